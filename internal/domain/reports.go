package domain

// Aggregate rows shared by the dashboard and analytics queries.

// MonthCount is a per-month donation count.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// GroupCount is a count keyed by blood group.
type GroupCount struct {
	BloodGroup string `json:"blood_group"`
	Count      int    `json:"count"`
}

// NamedCount is a count keyed by an arbitrary label (day name, gender,
// location, age bracket).
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// HourCount is a per-hour donation count.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// LeaderRow ranks a donor or hospital by donation volume.
type LeaderRow struct {
	Name          string `json:"name"`
	DonationCount int    `json:"donation_count"`
	TotalCredits  int    `json:"total_credits"`
}

// AdminOverview is the admin dashboard payload.
type AdminOverview struct {
	TotalHospitals       int              `json:"total_hospitals"`
	TotalUsers           int              `json:"total_users"`
	TotalDonations       int              `json:"total_donations"`
	PendingVerifications int              `json:"pending_verifications"`
	ActiveRequests       int              `json:"active_requests"`
	RecentDonations      []DonationRecord `json:"recent_donations"`
}

// AdminAnalytics is the system-wide analytics payload.
type AdminAnalytics struct {
	DonationTrends         []MonthCount `json:"donation_trends"`
	BloodGroupDistribution []GroupCount `json:"blood_group_distribution"`
	HospitalPerformance    []LeaderRow  `json:"hospital_performance"`
	UserDemographics       []NamedCount `json:"user_demographics"`
}

// HospitalOverview is the hospital dashboard payload.
type HospitalOverview struct {
	TotalRequests      int            `json:"total_requests"`
	ActiveRequests     int            `json:"active_requests"`
	TotalDonations     int            `json:"total_donations"`
	CompletedDonations int            `json:"completed_donations"`
	RecentRequests     []BloodRequest `json:"recent_requests"`
}

// HospitalStatistics is the hospital statistics payload.
type HospitalStatistics struct {
	DonationsByMonth       []MonthCount `json:"donations_by_month"`
	BloodGroupDistribution []GroupCount `json:"blood_group_distribution"`
	TopDonors              []LeaderRow  `json:"top_donors"`
}

// DonorOverview is the donor dashboard payload.
type DonorOverview struct {
	Profile         *Account         `json:"profile"`
	TotalDonations  int              `json:"total_donations"`
	TotalCredits    int              `json:"total_credits"`
	LastDonation    *string          `json:"last_donation"`
	NextEligible    *string          `json:"next_eligible"`
	RecentDonations []DonationRecord `json:"recent_donations"`
	Achievements    []Achievement    `json:"achievements"`
}

// DonationStatistics is the public statistics payload.
type DonationStatistics struct {
	TotalDonations         int          `json:"total_donations"`
	CompletedDonations     int          `json:"completed_donations"`
	PendingDonations       int          `json:"pending_donations"`
	DonationsThisMonth     int          `json:"donations_this_month"`
	BloodGroupDistribution []GroupCount `json:"blood_group_distribution"`
	MonthlyTrends          []MonthCount `json:"monthly_trends"`
	TopHospitals           []LeaderRow  `json:"top_hospitals"`
	TopDonors              []LeaderRow  `json:"top_donors"`
}

// DonationAnalytics is the public analytics payload.
type DonationAnalytics struct {
	DonationsByDay       []NamedCount `json:"donations_by_day"`
	DonationsByHour      []HourCount  `json:"donations_by_hour"`
	AgeGroupDistribution []NamedCount `json:"age_group_distribution"`
	GenderDistribution   []NamedCount `json:"gender_distribution"`
	LocationDistribution []NamedCount `json:"location_distribution"`
}

// Eligibility is the donor eligibility check payload.
type Eligibility struct {
	Eligible         bool    `json:"eligible"`
	Message          string  `json:"message"`
	NextEligibleDate *string `json:"next_eligible_date"`
	LastDonationDate *string `json:"last_donation_date"`
}
