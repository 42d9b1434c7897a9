package get_month_markers

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
	if req.Month.IsZero() {
		return fmt.Errorf("%w: month is required", ErrInvalidInput)
	}
	if req.SessionID != nil && *req.SessionID == "" {
		return fmt.Errorf("%w: session id is empty", ErrInvalidInput)
	}
	return nil
}
