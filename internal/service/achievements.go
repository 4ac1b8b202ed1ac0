package service

// milestone ties a donation count to the achievement it unlocks.
type milestone struct {
	Threshold   int
	Type        string
	Title       string
	Description string
	Icon        string
}

var donationMilestones = []milestone{
	{Threshold: 1, Type: "first_donation", Title: "First Donation", Description: "Completed your first blood donation", Icon: "🎯"},
	{Threshold: 3, Type: "life_saver", Title: "Life Saver", Description: "Completed 3 blood donations", Icon: "🩸"},
	{Threshold: 5, Type: "regular_donor", Title: "Regular Donor", Description: "Completed 5 blood donations", Icon: "⭐"},
}
