package memory

import (
	"time"

	"spacecityrentals/internal/db"
)

// seedVehicles returns the demo fleet shown when no database is configured.
func seedVehicles() []db.Vehicle {
	now := time.Now().UTC()
	at := func(i int) time.Time { return now.Add(time.Duration(i) * time.Second) }
	return []db.Vehicle{
		{
			ID:              "seed-001",
			Slug:            "rolls-royce-ghost",
			Name:            "Rolls-Royce Ghost",
			Headline:        "Move in Silence. Let the Car Do the Talking.",
			Description:     "The Rolls-Royce Ghost is the ultimate expression of restrained power. Whisper-quiet V12, bespoke interior, and the kind of presence that makes people wonder who just arrived.",
			DailyPriceCents: 120000,
			Images:          []string{"/images/fleet-rollsroyce.jpg"},
			ExperienceTags:  []string{"Boss Move", "Wedding Day", "Statement"},
			IsActive:        true,
			CreatedAt:       at(0),
			UpdatedAt:       at(0),
		},
		{
			ID:              "seed-002",
			Slug:            "lamborghini-huracan",
			Name:            "Lamborghini Huracan",
			Headline:        "Make an Entrance They Won't Forget.",
			Description:     "The Huracan is for when you want every single person to know you have arrived. Screaming V10, scissor doors, and a paint color that demands photographs.",
			DailyPriceCents: 95000,
			Images:          []string{"/images/fleet-lamborghini.jpg"},
			ExperienceTags:  []string{"Content Ready", "Date Night", "Statement"},
			IsActive:        true,
			CreatedAt:       at(1),
			UpdatedAt:       at(1),
		},
		{
			ID:              "seed-003",
			Slug:            "dodge-hellcat-widebody",
			Name:            "Dodge Hellcat Widebody",
			Headline:        "For When Subtle Isn't the Point.",
			Description:     "The Hellcat Widebody is raw American muscle at its finest. 717 horsepower, wide-body fender flares, and a supercharger whine that announces your arrival from blocks away.",
			DailyPriceCents: 45000,
			Images:          []string{"/images/fleet-hellcat.jpg"},
			ExperienceTags:  []string{"Weekend Takeover", "Content Ready", "Statement"},
			IsActive:        true,
			CreatedAt:       at(2),
			UpdatedAt:       at(2),
		},
		{
			ID:              "seed-004",
			Slug:            "mercedes-maybach-s-class",
			Name:            "Mercedes-Maybach S-Class",
			Headline:        "Executive Presence. Absolute Comfort.",
			Description:     "The Maybach S-Class is where business meets luxury. Rear executive seating, champagne cooler, and a ride so smooth you could close a deal mid-commute.",
			DailyPriceCents: 80000,
			Images:          []string{"/images/fleet-maybach.jpg"},
			ExperienceTags:  []string{"Boss Move", "Date Night", "Wedding Day"},
			IsActive:        true,
			CreatedAt:       at(3),
			UpdatedAt:       at(3),
		},
		{
			ID:              "seed-005",
			Slug:            "range-rover-sport",
			Name:            "Range Rover Sport",
			Headline:        "Command Every Road. Own Every Room.",
			Description:     "The Range Rover Sport blends commanding presence with athletic performance. Whether it's a night out or a weekend escape, this is how you travel in elevated style.",
			DailyPriceCents: 55000,
			Images:          []string{"/images/fleet-rangerover.jpg"},
			ExperienceTags:  []string{"Weekend Takeover", "Boss Move", "Date Night"},
			IsActive:        true,
			CreatedAt:       at(4),
			UpdatedAt:       at(4),
		},
		{
			ID:              "seed-006",
			Slug:            "chevrolet-corvette-c8",
			Name:            "Chevrolet Corvette C8",
			Headline:        "Mid-Engine. Maximum Impact.",
			Description:     "The C8 Corvette rewrote the rules. Mid-engine layout, supercar looks, and a price point that lets you experience exotic performance without the exotic price tag.",
			DailyPriceCents: 35000,
			Images:          []string{"/images/fleet-corvette.jpg"},
			ExperienceTags:  []string{"Content Ready", "Date Night", "Weekend Takeover"},
			IsActive:        true,
			CreatedAt:       at(5),
			UpdatedAt:       at(5),
		},
	}
}
