package model

// ChannelStatus is the reachability tier of one outreach channel.
type ChannelStatus string

const (
	ChannelGreen ChannelStatus = "green" // reachable
	ChannelRed   ChannelStatus = "red"   // bad contact data
	ChannelGray  ChannelStatus = "gray"  // unknown / unverified
)

// Contact is a synthetic owner contact. Names, emails and phone numbers
// are generated from fixed pools and are never real.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OutreachChannels holds per-channel reachability tiers.
type OutreachChannels struct {
	Email     ChannelStatus `json:"email"`
	SMS       ChannelStatus `json:"sms"`
	Call      ChannelStatus `json:"call"`
	Voicemail ChannelStatus `json:"voicemail"`
}

// Prospect is one synthetic lead consistent with a mandate's constraints.
type Prospect struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Address       string           `json:"address"`
	SubArea       string           `json:"sub_area"`
	City          string           `json:"city"`
	State         string           `json:"state,omitempty"`
	SizeSf        *int             `json:"size_sf,omitempty"`
	Units         *int             `json:"units,omitempty"`
	BuiltYear     int              `json:"built_year"`
	PriceEstimate int              `json:"price_estimate"`
	MatchReason   string           `json:"match_reason"`
	Contact       Contact          `json:"contact"`
	Outreach      OutreachChannels `json:"outreach_channels"`
}

// SynthesisResult partitions generated prospects into pipeline buckets
// by index at the 50% / 83% cumulative cut points.
type SynthesisResult struct {
	Prospects []Prospect `json:"prospects"`
	Qualified []Prospect `json:"qualified"`
	Booked    []Prospect `json:"booked"`
}
