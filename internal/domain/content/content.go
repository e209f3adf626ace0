package content

// Sport is one direction in the school's catalog. Description is markdown.
type Sport struct {
	Slug        string
	Name        string
	AgeRange    string
	Description string
}

// Plan is one pricing option. Amounts are whole dollars.
type Plan struct {
	Name     string
	Price    int
	Period   string
	Features []string
}

// FAQEntry is one question on the FAQ page. Answer is markdown.
type FAQEntry struct {
	Question string
	Answer   string
}

// Sports is the public catalog shown on the marketing pages.
var Sports = []Sport{
	{
		Slug:     "skateboarding",
		Name:     "Skateboarding",
		AgeRange: "5–16",
		Description: "From the first push to kickflips. Groups ride in our indoor " +
			"park with foam pits, so falls cost nothing.\n\n" +
			"**Levels:** beginner, progression, pro.",
	},
	{
		Slug:     "bmx",
		Name:     "BMX",
		AgeRange: "6–16",
		Description: "Pump track and ramp riding on school bikes sized for kids. " +
			"Helmets and pads are included in every pass.",
	},
	{
		Slug:     "parkour",
		Name:     "Parkour",
		AgeRange: "5–16",
		Description: "Safe falling, vaults and precision jumps on padded " +
			"obstacles before anyone touches concrete.",
	},
	{
		Slug:     "trampoline",
		Name:     "Trampoline",
		AgeRange: "3–16",
		Description: "Our youngest direction. Air awareness, shaped jumps and " +
			"flips into the foam pit, from age three.",
	},
	{
		Slug:     "climbing",
		Name:     "Climbing",
		AgeRange: "4–16",
		Description: "Bouldering walls graded for kids, with top-rope routes " +
			"for the older groups.",
	},
}

// Plans is the public pricing table.
var Plans = []Plan{
	{
		Name:   "Single class",
		Price:  25,
		Period: "per visit",
		Features: []string{
			"Any direction",
			"Gear included",
		},
	},
	{
		Name:   "Monthly 8",
		Price:  160,
		Period: "per month",
		Features: []string{
			"8 classes, any direction",
			"Gear included",
			"Progress diary",
		},
	},
	{
		Name:   "Unlimited",
		Price:  220,
		Period: "per month",
		Features: []string{
			"Unlimited classes",
			"Gear included",
			"Progress diary",
			"Priority tournament slots",
		},
	},
}

// FAQ is the public FAQ page content.
var FAQ = []FAQEntry{
	{
		Question: "From what age do you take kids?",
		Answer:   "Trampoline starts at **3**, climbing at **4**, everything else at 5–6.",
	},
	{
		Question: "Is it safe?",
		Answer: "Full protective gear is mandatory and included. Groups are capped " +
			"at 8 kids per trainer and every trainer is first-aid certified.",
	},
	{
		Question: "Can we try before paying?",
		Answer:   "Yes — the first trial class in any direction is free. Leave an application and we'll call you back.",
	},
	{
		Question: "Do you give sibling discounts?",
		Answer:   "Siblings get **15%** off any monthly pass.",
	},
}

// PlanByName returns the pricing plan with that exact name, or nil.
func PlanByName(name string) *Plan {
	for i := range Plans {
		if Plans[i].Name == name {
			return &Plans[i]
		}
	}
	return nil
}

// SportBySlug returns the catalog entry for slug, or nil.
func SportBySlug(slug string) *Sport {
	for i := range Sports {
		if Sports[i].Slug == slug {
			return &Sports[i]
		}
	}
	return nil
}
