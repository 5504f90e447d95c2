package model

// Space is a bookable room or desk.  PricePerHour is informational: the
// pricing service charges a flat hourly base rate regardless of it.
type Space struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Capacity     int     `json:"capacity"`
	PricePerHour float64 `json:"price_per_hour"`
	PhotoURL     string  `json:"photo_url"`
}

// SpacePatch carries a partial update.  Nil fields are left untouched.
type SpacePatch struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Capacity     *int     `json:"capacity" validate:"omitempty,gt=0"`
	PricePerHour *float64 `json:"price_per_hour" validate:"omitempty,gt=0"`
	PhotoURL     *string  `json:"photo_url"`
}

// Apply copies the set fields of p onto s.
func (p SpacePatch) Apply(s *Space) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Capacity != nil {
		s.Capacity = *p.Capacity
	}
	if p.PricePerHour != nil {
		s.PricePerHour = *p.PricePerHour
	}
	if p.PhotoURL != nil {
		s.PhotoURL = *p.PhotoURL
	}
}
