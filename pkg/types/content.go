package types

// Shapes of the static JSON content files under the data directory. Missing
// files or fields render as zero values; the content loader never fails a page.

type SiteInfo struct {
	Name         string `json:"name"`
	Tagline      string `json:"tagline"`
	RegNo        string `json:"regNo"`
	Address      string `json:"address"`
	ContactPhone string `json:"contactPhone"`
	ContactEmail string `json:"contactEmail"`
}

type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Hours   string `json:"hours"`
}

type SocialMedia struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	YouTube   string `json:"youtube"`
}

type Hero struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
	Image      string `json:"image"`
	CTAText    string `json:"ctaText"`
	CTALink    string `json:"ctaLink"`
}

type SiteStats struct {
	LivesImpacted  int `json:"livesImpacted"`
	Volunteers     int `json:"volunteers"`
	ProgramsRun    int `json:"programsRun"`
	CitiesCovered  int `json:"citiesCovered"`
	TotalDonations int `json:"totalDonations"`
}

type Mission struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type About struct {
	Title   string   `json:"title"`
	Story   string   `json:"story"`
	Vision  string   `json:"vision"`
	Mission string   `json:"mission"`
	Values  []string `json:"values"`
}

type DonationTier struct {
	Amount      int64  `json:"amount"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// SiteConfig is the aggregate of config.json.
type SiteConfig struct {
	SiteInfo          SiteInfo       `json:"siteInfo"`
	Contact           ContactInfo    `json:"contact"`
	SocialMedia       SocialMedia    `json:"socialMedia"`
	Hero              Hero           `json:"hero"`
	Stats             SiteStats      `json:"stats"`
	Mission           Mission        `json:"mission"`
	About             About          `json:"about"`
	VolunteerBenefits []string       `json:"volunteerBenefits"`
	DonationTiers     []DonationTier `json:"donationTiers"`
	PaymentMethods    []string       `json:"paymentMethods"`
}

type Program struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Impact      string `json:"impact"`
}

type Event struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Status      string `json:"status"` // upcoming | past
}

type BlogPost struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	Excerpt  string `json:"excerpt"`
	Body     string `json:"body"`
	Image    string `json:"image"`
}

type TeamMember struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Bio   string `json:"bio"`
	Image string `json:"image"`
}
