package delegation

import "github.com/codemyown/leave-mangement-system/internal/pkg/validator"

type CreateDelegationRequest struct {
	ManagerID  string `json:"-"`
	DelegateID string `json:"delegate_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *CreateDelegationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.DelegateID) {
		errs = append(errs, validator.ValidationError{
			Field:   "delegate_id",
			Message: "delegate_id must be a valid UUID",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a date in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a date in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
