package productionlog

import (
	"errors"
	"reflect"
	"strings"

	"github.com/ivancepe/Production-Trial/internal/models"
	"github.com/ivancepe/Production-Trial/internal/rules"

	"github.com/go-playground/validator/v10"
)

type CreateRequest struct {
	OperatorName     string  `json:"operatorName" validate:"required"`
	MachineID        string  `json:"machineId" validate:"required"`
	DieNumber        *string `json:"dieNumber,omitempty"`
	Shift            *string `json:"shift,omitempty"`
	Date             string  `json:"date" validate:"required,isodate"`
	StartTime        string  `json:"startTime" validate:"required,timeofday"`
	EndTime          string  `json:"endTime" validate:"required,timeofday"`
	QuantityProduced int     `json:"quantityProduced" validate:"min=0"`
	QuantityRejected int     `json:"quantityRejected" validate:"min=0"`
	Notes            *string `json:"notes,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := models.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate reports the most pressing problem first: missing fields, then
// negative quantities, then malformed dates or times.
func (r CreateRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	var missing, negative bool
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
		switch fe.Tag() {
		case "required":
			missing = true
		case "min":
			negative = true
		}
	}

	switch {
	case missing:
		return &ValidationError{Message: rules.MsgMissingFields, Fields: fields}
	case negative:
		return &ValidationError{Message: rules.MsgNegativeQuantity, Fields: fields}
	default:
		return &ValidationError{Message: rules.MsgInvalidFormat, Fields: fields}
	}
}

// ToModel converts a validated request. Blank optional text is stored as NULL.
func (r CreateRequest) ToModel() (models.ProductionLog, error) {
	date, err := models.ParseDate(r.Date)
	if err != nil {
		return models.ProductionLog{}, &ValidationError{Message: rules.MsgInvalidFormat}
	}
	start, err := models.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return models.ProductionLog{}, &ValidationError{Message: rules.MsgInvalidFormat}
	}
	end, err := models.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return models.ProductionLog{}, &ValidationError{Message: rules.MsgInvalidFormat}
	}

	return models.ProductionLog{
		OperatorName:     r.OperatorName,
		MachineID:        r.MachineID,
		DieNumber:        optional(r.DieNumber),
		Shift:            optional(r.Shift),
		Date:             date,
		StartTime:        start,
		EndTime:          end,
		QuantityProduced: r.QuantityProduced,
		QuantityRejected: r.QuantityRejected,
		Notes:            optional(r.Notes),
	}, nil
}

func optional(s *string) *string {
	if s == nil || rules.Blank(*s) {
		return nil
	}
	return s
}
