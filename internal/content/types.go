package content

// Content is everything the pages display. The interaction layer consumes
// it as configuration and never transforms it beyond rendering.
type Content struct {
	Meta          Meta        `yaml:"meta" koanf:"meta"`
	Company       Company     `yaml:"company" koanf:"company"`
	Nav           []NavLink   `yaml:"nav" koanf:"nav"`
	Hero          Hero        `yaml:"hero" koanf:"hero"`
	Marquee       []string    `yaml:"marquee" koanf:"marquee"`
	MarqueeRepeat int         `yaml:"marquee_repeat" koanf:"marquee_repeat"`
	Services      []Service   `yaml:"services" koanf:"services"`
	Statement     Statement   `yaml:"statement" koanf:"statement"`
	Features      []Feature   `yaml:"features" koanf:"features"`
	Footer        Footer      `yaml:"footer" koanf:"footer"`
	Contact       ContactPage `yaml:"contact" koanf:"contact"`
	Team          []Member    `yaml:"team" koanf:"team"`
}

// Meta is the document head metadata.
type Meta struct {
	Title         string `yaml:"title" koanf:"title"`
	Description   string `yaml:"description" koanf:"description"`
	OGTitle       string `yaml:"og_title" koanf:"og_title"`
	OGDescription string `yaml:"og_description" koanf:"og_description"`
}

// Company holds the identity strings shown across the site.
type Company struct {
	Name            string `yaml:"name" koanf:"name"`
	Tagline         string `yaml:"tagline" koanf:"tagline"`
	YearEstablished string `yaml:"year_established" koanf:"year_established"`
	Location        string `yaml:"location" koanf:"location"`
	City            string `yaml:"city" koanf:"city"`
	Phone           string `yaml:"phone" koanf:"phone"`
	Email           string `yaml:"email" koanf:"email"`
	Summary         string `yaml:"summary" koanf:"summary"`
}

// NavLink is one navigation entry. Target is the id handed to the menu;
// Href is where the target resolves to.
type NavLink struct {
	Label  string `yaml:"label" koanf:"label"`
	Target string `yaml:"target" koanf:"target"`
	Href   string `yaml:"href" koanf:"href"`
}

// Hero is the headline block at the top of the landing page.
type Hero struct {
	Status      string   `yaml:"status" koanf:"status"`
	Headline    []string `yaml:"headline" koanf:"headline"`
	Description string   `yaml:"description" koanf:"description"`
	CTALabel    string   `yaml:"cta_label" koanf:"cta_label"`
	CTAHref     string   `yaml:"cta_href" koanf:"cta_href"`
}

// Service is one accordion item.
type Service struct {
	ID    string   `yaml:"id" koanf:"id"`
	Title string   `yaml:"title" koanf:"title"`
	Desc  string   `yaml:"desc" koanf:"desc"`
	Specs []string `yaml:"specs" koanf:"specs"`
}

// Statement is the "why we exist" block.
type Statement struct {
	Kicker      string `yaml:"kicker" koanf:"kicker"`
	Body        string `yaml:"body" koanf:"body"`
	Image       string `yaml:"image" koanf:"image"`
	ImageAlt    string `yaml:"image_alt" koanf:"image_alt"`
	ReportLabel string `yaml:"report_label" koanf:"report_label"`
	ReportText  string `yaml:"report_text" koanf:"report_text"`
}

// Feature is a numbered point beside the statement.
type Feature struct {
	Number string `yaml:"number" koanf:"number"`
	Title  string `yaml:"title" koanf:"title"`
	Desc   string `yaml:"desc" koanf:"desc"`
}

// Footer holds the closing call to action and sitemap.
type Footer struct {
	CTA     string    `yaml:"cta" koanf:"cta"`
	Sitemap []NavLink `yaml:"sitemap" koanf:"sitemap"`
}

// ContactPage configures the contact page and its composer.
type ContactPage struct {
	Recipient      string   `yaml:"recipient" koanf:"recipient"`
	DefaultSubject string   `yaml:"default_subject" koanf:"default_subject"`
	Subjects       []string `yaml:"subjects" koanf:"subjects"`
	Kicker         string   `yaml:"kicker" koanf:"kicker"`
	Headline       []string `yaml:"headline" koanf:"headline"`
	HQ             string   `yaml:"hq" koanf:"hq"`
	SubmitLabel    string   `yaml:"submit_label" koanf:"submit_label"`
}

// Member is one leadership contact record.
type Member struct {
	Name  string `yaml:"name" koanf:"name"`
	Role  string `yaml:"role" koanf:"role"`
	Email string `yaml:"email" koanf:"email"`
	Phone string `yaml:"phone" koanf:"phone"`
}
