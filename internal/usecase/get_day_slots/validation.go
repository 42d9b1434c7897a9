package get_day_slots

import "fmt"

func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: client id must be positive", ErrInvalidInput)
	}
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professional id must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.SessionID != nil && *req.SessionID == "" {
		return fmt.Errorf("%w: session id is empty", ErrInvalidInput)
	}
	return nil
}
