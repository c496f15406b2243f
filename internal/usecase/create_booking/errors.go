package create_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotNotFound возвращается, когда парковочное место не найдено
	ErrSlotNotFound = errors.New("create_booking: parking slot not found")

	// ErrTimeSlotConflict возвращается, когда интервал пересекается с существующей бронью
	ErrTimeSlotConflict = errors.New("create_booking: time slot conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Kind класс ошибки бронирования
type Kind int

const (
	KindInfra Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "infra"
	}
}

// KindOf классифицирует ошибку usecase; всё неизвестное считается инфраструктурной ошибкой
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrSlotNotFound):
		return KindNotFound
	case errors.Is(err, ErrTimeSlotConflict):
		return KindConflict
	default:
		return KindInfra
	}
}

// outcomeOf переводит ошибку в метку исхода для метрик
func outcomeOf(err error) string {
	switch KindOf(err) {
	case KindValidation:
		return domain.OutcomeInvalid
	case KindNotFound:
		return domain.OutcomeNotFound
	case KindConflict:
		return domain.OutcomeConflict
	default:
		return domain.OutcomeError
	}
}

// FieldError ошибка конкретного поля запроса
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError список ошибок полей, раскрывается в ErrInvalidInput
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%v: %s", ErrInvalidInput, strings.Join(messages, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// FieldNames возвращает имена невалидных полей
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

// ConflictError интервал пересекается с уже принятой бронью места
// ConflictingBookingID = 0, если конфликт обнаружен ограничением БД
type ConflictError struct {
	SlotID               int64
	ConflictingBookingID int64
}

func (e *ConflictError) Error() string {
	if e.ConflictingBookingID == 0 {
		return fmt.Sprintf("%v: slot=%d", ErrTimeSlotConflict, e.SlotID)
	}
	return fmt.Sprintf("%v: slot=%d overlaps booking=%d", ErrTimeSlotConflict, e.SlotID, e.ConflictingBookingID)
}

func (e *ConflictError) Unwrap() error {
	return ErrTimeSlotConflict
}

// Message человекочитаемое сообщение для клиента
func (e *ConflictError) Message() string {
	return domain.MsgTimeSlotConflict
}
