package service

import (
	spaceModel "spacebook/internal/domains/space/model"
	spaceDto "spacebook/internal/domains/space/model/dto"
	"spacebook/shared/constant"
)

type account struct {
	email    string
	password string
	fullName string
	role     string
}

var accounts = []account{
	{email: "admin@example.com", password: "admin123", fullName: "Admin User", role: constant.RoleAdmin},
	{email: "user@example.com", password: "user123", fullName: "Regular User", role: constant.RoleUser},
}

func price(value float64) *float64 {
	return &value
}

var catalog = []spaceDto.CreateSpaceRequest{
	{
		Name:         "Downtown Hub",
		Type:         spaceModel.TypeCoworking,
		Location:     "123 Main St, Downtown",
		Capacity:     50,
		Amenities:    []string{"WiFi", "Coffee", "Parking", "AC"},
		Description:  "Modern coworking space in the heart of downtown with high-speed internet and comfortable seating.",
		PricePerHour: price(15.99),
		Images: []string{
			"https://images.unsplash.com/photo-1497366216548-37526070297c?w=800",
			"https://images.unsplash.com/photo-1497366811353-6870744d04b2?w=800",
		},
	},
	{
		Name:         "Creative Studio",
		Type:         spaceModel.TypeMeetingRoom,
		Location:     "456 Art Ave, Arts District",
		Capacity:     12,
		Amenities:    []string{"WiFi", "Projector", "Whiteboard", "Coffee"},
		Description:  "Perfect for creative meetings and brainstorming sessions with artistic surroundings.",
		PricePerHour: price(25),
		Images: []string{
			"https://images.unsplash.com/photo-1497366754035-f200968a6e72?w=800",
		},
	},
	{
		Name:         "Executive Suite",
		Type:         spaceModel.TypeConferenceHall,
		Location:     "789 Business Blvd, Financial District",
		Capacity:     100,
		Amenities:    []string{"WiFi", "Projector", "Whiteboard", "Coffee", "Parking", "AC"},
		Description:  "Large conference hall ideal for corporate events, presentations, and large meetings.",
		PricePerHour: price(75),
		Images: []string{
			"https://images.unsplash.com/photo-1511632765486-a01980e01a18?w=800",
			"https://images.unsplash.com/photo-1511632810258-3c8e8c9c9b7c?w=800",
		},
	},
	{
		Name:         "Garden Oasis",
		Type:         spaceModel.TypeEventVenue,
		Location:     "321 Garden Ln, Suburban Area",
		Capacity:     80,
		Amenities:    []string{"WiFi", "Coffee", "Parking", "AC", "Outdoor Space"},
		Description:  "Beautiful outdoor venue with garden views, perfect for weddings and special events.",
		PricePerHour: price(50),
		Images: []string{
			"https://images.unsplash.com/photo-1464366400600-7168b8af9bc3?w=800",
			"https://images.unsplash.com/photo-1519167758481-83f550bb49b3?w=800",
		},
	},
	{
		Name:         "Tech Loft",
		Type:         spaceModel.TypeCoworking,
		Location:     "654 Tech Park, Innovation District",
		Capacity:     30,
		Amenities:    []string{"WiFi", "Coffee", "Parking", "AC", "Projector"},
		Description:  "High-tech coworking space with modern amenities and fast internet for tech professionals.",
		PricePerHour: price(20),
		Images: []string{
			"https://images.unsplash.com/photo-1524758631624-e2822e304c36?w=800",
		},
	},
}
