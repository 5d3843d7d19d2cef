package types

// BasePageData carries the fields every rendered page needs: site chrome from
// config.json plus the signed-in identity, if any.
type BasePageData struct {
	Title       string
	Notice      string
	Error       string
	SiteInfo    SiteInfo
	Contact     ContactInfo
	SocialMedia SocialMedia
	CurrentYear int

	IsAuthenticated bool
	Username        string
	Role            Role
}

func (b *BasePageData) SetGlobals(g Globals) {
	b.Notice = g.Notice
	b.Error = g.Error
	b.SiteInfo = g.SiteInfo
	b.Contact = g.Contact
	b.SocialMedia = g.SocialMedia
	b.CurrentYear = g.CurrentYear
	b.IsAuthenticated = g.IsAuthenticated
	b.Username = g.Username
	b.Role = g.Role
}

// Globals mirrors the original context processor: data injected into every
// template regardless of page.
type Globals struct {
	Notice      string
	Error       string
	SiteInfo    SiteInfo
	Contact     ContactInfo
	SocialMedia SocialMedia
	CurrentYear int

	IsAuthenticated bool
	Username        string
	Role            Role
}

// GlobalsSetter is implemented by page data structs that embed BasePageData.
type GlobalsSetter interface {
	SetGlobals(Globals)
}
