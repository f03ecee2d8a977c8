package get_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	"github.com/avdmnk/SVC-BookingService/internal/service/bookings/models"
)

// parseFilter собирает фильтр бронирований из query-параметров
func parseFilter(query url.Values) (*models.GetBookingsRequest, error) {
	req := &models.GetBookingsRequest{}

	if raw := query.Get("customerId"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid customerId: %v", err)
		}
		req.CustomerID = &customerID
	}

	if raw := query.Get("serviceId"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid serviceId: %v", err)
		}
		req.ServiceID = &serviceID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %v", err)
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %v", err)
		}
		req.EndDate = &endDate
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %v", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
