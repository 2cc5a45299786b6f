package emailblocks

import "time"

// now is the clock used for date placeholders
var now = time.Now

const placeholderImage = "https://via.placeholder.com"

// DefaultBlockStyle returns the style applied to newly created blocks
func DefaultBlockStyle() BlockStyle {
	return BlockStyle{
		TextAlign:  "left",
		Padding:    "16px",
		LineHeight: "1.5",
	}
}

// DefaultGlobalStyles returns the document-wide defaults
func DefaultGlobalStyles() GlobalStyles {
	return GlobalStyles{
		BackgroundColor:        "#f4f4f4",
		ContentWidth:           "600px",
		ContentBackgroundColor: "#ffffff",
		BorderRadius:           "8px",
		FontFamily:             "Arial, sans-serif",
		FontSize:               "16px",
		TextColor:              "#333333",
		LinkColor:              "#0066cc",
		HeadingColor:           "#1a1a1a",
	}
}

// DefaultContent returns the placeholder content for a new block
func DefaultContent(blockType BlockType) string {
	switch blockType {
	case BlockTypeText:
		return "<p>Click to edit this text block. You can add your content here.</p>"
	case BlockTypeHeading:
		return "Your Heading Here"
	case BlockTypeQuote:
		return "Add your quote here..."
	case BlockTypeFooter:
		return "© 2024 Your Company. All rights reserved."
	default:
		return ""
	}
}

// DefaultSettings returns a fully populated settings variant for every block type.
// Content-only and unknown types get NoSettings. The result is never nil.
func DefaultSettings(blockType BlockType) Settings {
	switch blockType {
	case BlockTypeButton:
		return defaultButtonSettings()
	case BlockTypeDivider:
		return DividerSettings{DividerStyle: "solid", DividerColor: "#e0e0e0", DividerWidth: "1px"}
	case BlockTypeSpacer:
		return SpacerSettings{SpacerHeight: "32px"}
	case BlockTypeSocial:
		return SocialSettings{Links: []SocialLink{
			{Platform: "facebook", URL: "#"},
			{Platform: "twitter", URL: "#"},
			{Platform: "linkedin", URL: "#"},
		}}
	case BlockTypeList:
		return ListSettings{Items: []string{"Item 1", "Item 2", "Item 3"}, ListType: "bullet"}
	case BlockTypeColumns:
		return ColumnsSettings{Columns: []Column{
			{Width: "50%", Content: []EmailBlock{}},
			{Width: "50%", Content: []EmailBlock{}},
		}}
	case BlockTypeMenu:
		return MenuSettings{
			Items: []MenuItem{
				{Label: "Home", URL: "#"},
				{Label: "About", URL: "#"},
				{Label: "Contact", URL: "#"},
			},
			Orientation: "horizontal",
		}
	case BlockTypeTable:
		return TableSettings{
			Rows: []TableRow{
				{Cells: []TableCell{{Content: "Header 1"}, {Content: "Header 2"}, {Content: "Header 3"}}},
				{Cells: []TableCell{{Content: "Cell 1"}, {Content: "Cell 2"}, {Content: "Cell 3"}}},
				{Cells: []TableCell{{Content: "Cell 4"}, {Content: "Cell 5"}, {Content: "Cell 6"}}},
			},
			HeaderRow: true,
		}
	case BlockTypeCountdown:
		return CountdownSettings{
			TargetDate:     now().Add(7 * 24 * time.Hour).UTC().Format("2006-01-02T15:04"),
			ExpiredMessage: "Offer has expired",
		}
	case BlockTypeVideo:
		return VideoSettings{}
	case BlockTypeImage:
		return ImageSettings{Alignment: "center", Width: "100%"}
	case BlockTypeHero:
		return HeroSettings{
			Title:           "Your Hero Title",
			Subtitle:        "Add a compelling subtitle here",
			ButtonText:      "Get Started",
			ButtonURL:       "#",
			BackgroundColor: "#4F46E5",
		}
	case BlockTypeTestimonial:
		return TestimonialSettings{
			Quote:   "This product changed my life! Highly recommended.",
			Author:  "John Doe",
			Role:    "CEO",
			Company: "Acme Corp",
			Rating:  5,
		}
	case BlockTypePricing:
		return PricingSettings{
			PlanName:   "Pro Plan",
			Price:      "$29",
			Period:     "/month",
			Features:   []string{"Feature 1", "Feature 2", "Feature 3", "Feature 4"},
			ButtonText: "Get Started",
			ButtonURL:  "#",
		}
	case BlockTypeFeature:
		return FeatureSettings{
			Icon:          "⚡",
			Title:         "Feature Title",
			Description:   "Describe your amazing feature here.",
			ImagePosition: "left",
		}
	case BlockTypeCTA:
		return CTASettings{
			Headline:    "Ready to Get Started?",
			Subheadline: "Join thousands of happy customers today.",
			ButtonText:  "Start Free Trial",
			ButtonURL:   "#",
		}
	case BlockTypeImageText:
		return ImageTextSettings{
			ImageURL:      placeholderImage + "/300x200",
			ImageAlt:      "Image",
			Title:         "Section Title",
			Description:   "Add your description here. This layout works great for features, products, or any content that pairs well with an image.",
			ButtonText:    "Learn More",
			ButtonURL:     "#",
			ImagePosition: "left",
		}
	case BlockTypeGallery:
		return GallerySettings{
			Images: []GalleryImage{
				{Src: placeholderImage + "/200x200", Alt: "Image 1"},
				{Src: placeholderImage + "/200x200", Alt: "Image 2"},
				{Src: placeholderImage + "/200x200", Alt: "Image 3"},
			},
			Columns: 3,
		}
	case BlockTypeStats:
		return StatsSettings{Stats: []Stat{
			{Value: "10K+", Label: "Customers"},
			{Value: "99%", Label: "Satisfaction"},
			{Value: "24/7", Label: "Support"},
		}}
	case BlockTypeFAQ:
		return FAQSettings{Items: []FAQItem{
			{Question: "What is your return policy?", Answer: "We offer a 30-day money-back guarantee on all purchases."},
			{Question: "How long does shipping take?", Answer: "Standard shipping takes 3-5 business days."},
		}}
	case BlockTypeSignature:
		return SignatureSettings{
			Name:    "John Doe",
			Title:   "CEO & Founder",
			Company: "Your Company",
			Email:   "john@company.com",
			Phone:   "+1 (555) 123-4567",
		}
	case BlockTypeURL:
		return URLSettings{URL: "https://example.com", DisplayText: "Visit Our Website", Style: "link"}
	case BlockTypeCalendar:
		return CalendarSettings{
			EventTitle:    "Upcoming Event",
			EventDate:     now().Add(7 * 24 * time.Hour).UTC().Format("2006-01-02"),
			EventTime:     "2:00 PM - 4:00 PM",
			EventLocation: "123 Main Street, City",
		}
	case BlockTypeMap:
		return MapSettings{Address: "123 Main Street, City, State 12345", DirectionsURL: "https://maps.google.com"}
	case BlockTypeCoupon:
		return CouponSettings{Code: "SAVE20", Discount: "20% OFF", Description: "On your first order", BorderStyle: "dashed"}
	case BlockTypeRating:
		return RatingSettings{Rating: 5, MaxRating: 5, Style: "stars"}
	case BlockTypeProgress:
		return ProgressSettings{Value: 75, Max: 100, Label: "Goal Progress", ShowPercentage: true}
	case BlockTypeAccordion:
		return AccordionSettings{Items: []AccordionItem{
			{Title: "Section 1", Content: "Content for section 1"},
			{Title: "Section 2", Content: "Content for section 2"},
		}}
	case BlockTypeIconList:
		return IconListSettings{
			Items: []IconListItem{
				{Icon: "✓", Text: "Feature one", Subtext: "Description"},
				{Icon: "✓", Text: "Feature two", Subtext: "Description"},
				{Icon: "✓", Text: "Feature three", Subtext: "Description"},
			},
			IconColor: "#10B981",
		}
	case BlockTypeBeforeAfter:
		return BeforeAfterSettings{BeforeLabel: "Before", AfterLabel: "After"}
	default:
		return NoSettings{}
	}
}

func defaultButtonSettings() ButtonSettings {
	return ButtonSettings{
		Text:               "Click Here",
		URL:                "#",
		ButtonColor:        "#0066cc",
		ButtonTextColor:    "#ffffff",
		ButtonBorderRadius: "4px",
		ButtonPadding:      "12px 24px",
	}
}

// NewBlock creates a block of the given type with default content, style and settings
func NewBlock(id string, blockType BlockType) EmailBlock {
	return EmailBlock{
		ID:       id,
		Type:     blockType,
		Content:  DefaultContent(blockType),
		Style:    DefaultBlockStyle(),
		Settings: DefaultSettings(blockType),
	}
}
