package models

type PackageRequest struct {
	Name          string                `json:"name" validate:"required,max=255"`
	Description   string                `json:"description" validate:"required"`
	Location      string                `json:"location" validate:"max=255"`
	TravelType    string                `json:"travel_type" validate:"max=100"`
	Price         float64               `json:"price" validate:"required,gt=0"`
	DiscountPrice *float64              `json:"discount_price" validate:"omitempty,gt=0"`
	StartDate     string                `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string                `json:"end_date" validate:"required,datetime=2006-01-02"`
	Itinerary     []ItineraryDayRequest `json:"itinerary" validate:"omitempty,dive"`
}

type ItineraryDayRequest struct {
	Day         int    `json:"day" validate:"required,min=1"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
}

type ItineraryRequest struct {
	Days []ItineraryDayRequest `json:"days" validate:"dive"`
}

type BookRequest struct {
	NumberOfTravelers int `json:"number_of_travelers" validate:"omitempty,min=1,max=50"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}
