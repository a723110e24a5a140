package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTransaction возвращается при вызове проверки вне транзакции
	// Блокировки дней и FOR UPDATE имеют смысл только внутри транзакции
	ErrNoTransaction = errors.New("scheduling: evaluation requires an active transaction")

	// ErrInvalidServiceSet общая категория ошибок набора услуг
	// Хендлеры матчат категорию, конкретные ошибки уточняют причину
	ErrInvalidServiceSet = errors.New("scheduling: invalid service set")

	// ErrEmptyServiceSet возвращается, когда не указана ни одна услуга
	ErrEmptyServiceSet = fmt.Errorf("%w: at least one service is required", ErrInvalidServiceSet)

	// ErrServiceNotFound возвращается, когда часть услуг не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: one or more services not found", ErrInvalidServiceSet)

	// ErrInvalidDuration возвращается при неположительной суммарной длительности
	ErrInvalidDuration = fmt.Errorf("%w: total duration must be positive", ErrInvalidServiceSet)

	// ErrStorageUnavailable возвращается при ошибках БД
	// Ретраи не выполняются на этом уровне, политика повторов у вызывающего слоя
	ErrStorageUnavailable = errors.New("scheduling: storage unavailable")
)
