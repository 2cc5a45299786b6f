package emailblocks

import (
	"fmt"
	"time"
)

// Preset is a read-only starter document
type Preset struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Blocks      []EmailBlock `json:"blocks"`
	Styles      GlobalStyles `json:"styles"`
}

// presetBuilder numbers the blocks of one preset so ids are stable across calls
type presetBuilder struct {
	id string
	n  int
}

func (p *presetBuilder) block(blockType BlockType, content string, style BlockStyle, settings Settings) EmailBlock {
	p.n++
	if settings == nil {
		settings = NoSettings{}
	}
	return EmailBlock{
		ID:       fmt.Sprintf("%s-%d", p.id, p.n),
		Type:     blockType,
		Content:  content,
		Style:    DefaultBlockStyle().Merge(style),
		Settings: settings,
	}
}

func button(text, color, radius, padding string) ButtonSettings {
	return ButtonSettings{
		Text:               text,
		URL:                "#",
		ButtonColor:        color,
		ButtonTextColor:    "#ffffff",
		ButtonBorderRadius: radius,
		ButtonPadding:      padding,
	}
}

// Presets returns the built-in starter documents
func Presets() []Preset {
	return []Preset{
		blankPreset(),
		welcomePreset(),
		newsletterPreset(),
		flashSalePreset(),
		productUpdatePreset(),
		orderConfirmationPreset(),
	}
}

// PresetByID looks up a built-in preset
func PresetByID(id string) (Preset, error) {
	for _, preset := range Presets() {
		if preset.ID == id {
			return preset, nil
		}
	}
	return Preset{}, fmt.Errorf("%s: %w", id, ErrUnknownPreset)
}

func blankPreset() Preset {
	return Preset{
		ID:          "blank",
		Name:        "Blank Template",
		Description: "Start from scratch",
		Category:    "Basic",
		Blocks:      []EmailBlock{},
		Styles:      DefaultGlobalStyles(),
	}
}

func welcomePreset() Preset {
	p := &presetBuilder{id: "welcome-modern"}
	return Preset{
		ID:          p.id,
		Name:        "Modern Welcome",
		Description: "Clean onboarding email",
		Category:    "Onboarding",
		Blocks: []EmailBlock{
			p.block(BlockTypeImage, "", BlockStyle{TextAlign: "center", Padding: "32px 24px 16px", BackgroundColor: "#4F46E5"},
				ImageSettings{Src: placeholderImage + "/180x50/ffffff/4F46E5?text=LOGO", Alt: "Logo", Alignment: "center"}),
			p.block(BlockTypeHeading, "Welcome to the Family! 🎉", BlockStyle{TextAlign: "center", FontSize: "32px", Padding: "24px", BackgroundColor: "#4F46E5", TextColor: "#ffffff"}, nil),
			p.block(BlockTypeText, `<p style="text-align:center;color:#E0E7FF;">You're now part of something special</p>`, BlockStyle{TextAlign: "center", Padding: "0 24px 32px", BackgroundColor: "#4F46E5"}, nil),
			p.block(BlockTypeSpacer, "", BlockStyle{}, SpacerSettings{SpacerHeight: "24px"}),
			p.block(BlockTypeText, "<p>Hi {{firstName}},</p><p>Welcome aboard! We're thrilled to have you join our community of innovators and creators.</p>", BlockStyle{Padding: "24px"}, nil),
			p.block(BlockTypeHeading, "Here's what happens next:", BlockStyle{FontSize: "20px", Padding: "16px 24px 8px"}, nil),
			p.block(BlockTypeList, "", BlockStyle{Padding: "8px 24px 24px"},
				ListSettings{Items: []string{"Complete your profile setup", "Explore our features", "Connect with the community", "Start creating amazing things"}, ListType: "numbered"}),
			p.block(BlockTypeButton, "", BlockStyle{TextAlign: "center", Padding: "24px"}, button("Get Started Now", "#4F46E5", "8px", "16px 40px")),
			p.block(BlockTypeDivider, "", BlockStyle{Padding: "24px"}, DividerSettings{DividerStyle: "solid", DividerColor: "#E5E7EB", DividerWidth: "1px"}),
			p.block(BlockTypeText, `<p style="text-align:center;font-size:14px;color:#6B7280;">Need help? Reply to this email or visit our <a href="#" style="color:#4F46E5;">Help Center</a></p>`, BlockStyle{TextAlign: "center", Padding: "16px 24px"}, nil),
			p.block(BlockTypeFooter, "© 2024 Your Company. All rights reserved.", BlockStyle{Padding: "24px", BackgroundColor: "#F9FAFB"}, nil),
		},
		Styles: DefaultGlobalStyles().Merge(GlobalStyles{BackgroundColor: "#F3F4F6", ContentBackgroundColor: "#ffffff", LinkColor: "#4F46E5", HeadingColor: "#111827"}),
	}
}

func newsletterPreset() Preset {
	p := &presetBuilder{id: "newsletter-magazine"}
	return Preset{
		ID:          p.id,
		Name:        "Magazine Newsletter",
		Description: "Editorial style newsletter",
		Category:    "Newsletter",
		Blocks: []EmailBlock{
			p.block(BlockTypeImage, "", BlockStyle{TextAlign: "center", Padding: "24px", BackgroundColor: "#0F172A"},
				ImageSettings{Src: placeholderImage + "/160x40/ffffff/0F172A?text=THE+WEEKLY", Alt: "Newsletter", Alignment: "center"}),
			p.block(BlockTypeMenu, "", BlockStyle{Padding: "0 24px 24px", BackgroundColor: "#0F172A"}, MenuSettings{
				Items:       []MenuItem{{Label: "Tech", URL: "#"}, {Label: "Business", URL: "#"}, {Label: "Design", URL: "#"}, {Label: "Culture", URL: "#"}},
				Orientation: "horizontal",
			}),
			p.block(BlockTypeImage, "", BlockStyle{Padding: "0"},
				ImageSettings{Src: placeholderImage + "/600x300/3B82F6/ffffff?text=FEATURED+STORY", Alt: "Featured", Alignment: "center", Width: "100%"}),
			p.block(BlockTypeHeading, "The Future of AI in Creative Industries", BlockStyle{FontSize: "28px", Padding: "24px 24px 8px"}, nil),
			p.block(BlockTypeText, `<p style="color:#64748B;font-size:14px;">December 1, 2024 • 8 min read</p>`, BlockStyle{Padding: "0 24px 16px"}, nil),
			p.block(BlockTypeText, "<p>Artificial intelligence is revolutionizing how we create, design, and innovate. From generating artwork to composing music, AI tools are becoming indispensable partners in the creative process...</p>", BlockStyle{Padding: "0 24px 16px"}, nil),
			p.block(BlockTypeButton, "", BlockStyle{TextAlign: "left", Padding: "0 24px 32px"}, button("Continue Reading →", "#3B82F6", "6px", "12px 24px")),
			p.block(BlockTypeDivider, "", BlockStyle{Padding: "0 24px"}, DividerSettings{DividerStyle: "solid", DividerColor: "#E2E8F0", DividerWidth: "1px"}),
			p.block(BlockTypeHeading, "More Stories", BlockStyle{FontSize: "18px", Padding: "24px 24px 16px", TextColor: "#64748B"}, nil),
			p.block(BlockTypeText, "<p><strong>🚀 Startup Spotlight:</strong> How a small team built a billion-dollar company</p><p><strong>💡 Design Trends:</strong> What's shaping visual design in 2025</p><p><strong>📊 Data Deep Dive:</strong> Understanding user behavior patterns</p>", BlockStyle{Padding: "0 24px 24px"}, nil),
			p.block(BlockTypeSocial, "", BlockStyle{Padding: "24px", BackgroundColor: "#F8FAFC"},
				SocialSettings{Links: []SocialLink{{Platform: "twitter", URL: "#"}, {Platform: "linkedin", URL: "#"}, {Platform: "instagram", URL: "#"}}}),
			p.block(BlockTypeFooter, "© 2024 The Weekly. Unsubscribe anytime.", BlockStyle{Padding: "24px", BackgroundColor: "#F8FAFC"}, nil),
		},
		Styles: DefaultGlobalStyles().Merge(GlobalStyles{BackgroundColor: "#E2E8F0", ContentBackgroundColor: "#ffffff", LinkColor: "#3B82F6", HeadingColor: "#0F172A"}),
	}
}

func flashSalePreset() Preset {
	p := &presetBuilder{id: "ecommerce-sale"}
	return Preset{
		ID:          p.id,
		Name:        "Flash Sale",
		Description: "Bold promotional email",
		Category:    "E-commerce",
		Blocks: []EmailBlock{
			p.block(BlockTypeHeading, "⚡ FLASH SALE ⚡", BlockStyle{TextAlign: "center", FontSize: "42px", Padding: "40px 24px 8px", BackgroundColor: "#DC2626", TextColor: "#ffffff", FontWeight: "bold"}, nil),
			p.block(BlockTypeHeading, "UP TO 70% OFF", BlockStyle{TextAlign: "center", FontSize: "56px", Padding: "0 24px 8px", BackgroundColor: "#DC2626", TextColor: "#FEF08A", FontWeight: "bold"}, nil),
			p.block(BlockTypeText, `<p style="text-align:center;font-size:18px;">Limited time only • Ends midnight</p>`, BlockStyle{TextAlign: "center", Padding: "0 24px 32px", BackgroundColor: "#DC2626", TextColor: "#FEE2E2"}, nil),
			p.block(BlockTypeCountdown, "", BlockStyle{Padding: "24px", BackgroundColor: "#DC2626"},
				CountdownSettings{TargetDate: now().Add(24 * time.Hour).UTC().Format(time.RFC3339), ExpiredMessage: "Sale ended!"}),
			p.block(BlockTypeSpacer, "", BlockStyle{}, SpacerSettings{SpacerHeight: "24px"}),
			p.block(BlockTypeImage, "", BlockStyle{Padding: "24px"},
				ImageSettings{Src: placeholderImage + "/560x280/F3F4F6/374151?text=BEST+SELLERS", Alt: "Products", Alignment: "center", Width: "100%"}),
			p.block(BlockTypeHeading, "Top Picks For You", BlockStyle{FontSize: "24px", TextAlign: "center", Padding: "16px 24px"}, nil),
			p.block(BlockTypeText, `<p style="text-align:center;">Handpicked deals based on your preferences</p>`, BlockStyle{TextAlign: "center", Padding: "0 24px 24px"}, nil),
			p.block(BlockTypeButton, "", BlockStyle{TextAlign: "center", Padding: "24px"}, button("SHOP NOW", "#DC2626", "50px", "18px 60px")),
			p.block(BlockTypeCoupon, "", BlockStyle{Padding: "0 24px 32px"},
				CouponSettings{Code: "FLASH70", Discount: "70% OFF", Description: "Use this code at checkout", BorderStyle: "dashed", BackgroundColor: "#DC2626"}),
			p.block(BlockTypeDivider, "", BlockStyle{Padding: "0 24px"}, DividerSettings{DividerStyle: "dashed", DividerColor: "#E5E7EB", DividerWidth: "2px"}),
			p.block(BlockTypeText, `<p style="text-align:center;font-size:12px;color:#9CA3AF;">Free shipping on orders over $50 • Easy returns</p>`, BlockStyle{TextAlign: "center", Padding: "24px"}, nil),
			p.block(BlockTypeFooter, "© 2024 Your Store", BlockStyle{Padding: "24px", BackgroundColor: "#F9FAFB"}, nil),
		},
		Styles: DefaultGlobalStyles().Merge(GlobalStyles{BackgroundColor: "#FEE2E2", ContentBackgroundColor: "#ffffff", LinkColor: "#DC2626"}),
	}
}

func productUpdatePreset() Preset {
	p := &presetBuilder{id: "saas-update"}
	return Preset{
		ID:          p.id,
		Name:        "Product Update",
		Description: "Feature announcement",
		Category:    "Product",
		Blocks: []EmailBlock{
			p.block(BlockTypeImage, "", BlockStyle{TextAlign: "center", Padding: "32px 24px 24px"},
				ImageSettings{Src: placeholderImage + "/140x40/6366F1/ffffff?text=PRODUCT", Alt: "Logo", Alignment: "center"}),
			p.block(BlockTypeHeading, "Introducing Dark Mode 🌙", BlockStyle{TextAlign: "center", FontSize: "36px", Padding: "8px 24px 16px"}, nil),
			p.block(BlockTypeText, `<p style="text-align:center;font-size:18px;color:#6B7280;">Plus 5 more features you've been asking for</p>`, BlockStyle{TextAlign: "center", Padding: "0 24px 32px"}, nil),
			p.block(BlockTypeColumns, "", BlockStyle{Padding: "0 16px 24px"}, ColumnsSettings{Columns: []Column{
				{Width: "50%", Content: []EmailBlock{
					p.block(BlockTypeFeature, "", BlockStyle{Padding: "8px"}, FeatureSettings{Icon: "🌙", Title: "Dark mode", Description: "Easy on the eyes, day or night.", ImagePosition: "top"}),
				}},
				{Width: "50%", Content: []EmailBlock{
					p.block(BlockTypeFeature, "", BlockStyle{Padding: "8px"}, FeatureSettings{Icon: "⚡", Title: "2x faster", Description: "Pages load in half the time.", ImagePosition: "top"}),
				}},
			}}),
			p.block(BlockTypeButton, "", BlockStyle{TextAlign: "center", Padding: "24px"}, button("Try It Now", "#6366F1", "8px", "14px 32px")),
			p.block(BlockTypeTestimonial, "", BlockStyle{BackgroundColor: "#F5F3FF"}, TestimonialSettings{
				Quote:  "This update is a game-changer! The dark mode is exactly what I needed for late-night work sessions.",
				Author: "Sarah K.",
				Role:   "Power User",
				Rating: 5,
			}),
			p.block(BlockTypeFooter, "© 2024 Product Inc.", BlockStyle{Padding: "24px"}, nil),
		},
		Styles: DefaultGlobalStyles().Merge(GlobalStyles{BackgroundColor: "#EEF2FF", ContentBackgroundColor: "#ffffff", LinkColor: "#6366F1", HeadingColor: "#1F2937"}),
	}
}

func orderConfirmationPreset() Preset {
	p := &presetBuilder{id: "order-confirmation"}
	tableRow := func(cells ...string) TableRow {
		r := TableRow{}
		for _, c := range cells {
			r.Cells = append(r.Cells, TableCell{Content: c})
		}
		return r
	}
	return Preset{
		ID:          p.id,
		Name:        "Order Confirmation",
		Description: "Purchase thank you",
		Category:    "E-commerce",
		Blocks: []EmailBlock{
			p.block(BlockTypeImage, "", BlockStyle{TextAlign: "center", Padding: "32px 24px 24px"},
				ImageSettings{Src: placeholderImage + "/140x40/059669/ffffff?text=STORE", Alt: "Logo", Alignment: "center"}),
			p.block(BlockTypeHeading, "Thank You! 🎉", BlockStyle{TextAlign: "center", FontSize: "36px", Padding: "16px 24px 8px"}, nil),
			p.block(BlockTypeText, `<p style="text-align:center;font-size:18px;color:#6B7280;">Your order has been confirmed</p>`, BlockStyle{TextAlign: "center", Padding: "0 24px 24px"}, nil),
			p.block(BlockTypeDivider, "", BlockStyle{Padding: "0 24px"}, DividerSettings{DividerStyle: "solid", DividerColor: "#E5E7EB", DividerWidth: "1px"}),
			p.block(BlockTypeHeading, "Order Summary", BlockStyle{FontSize: "18px", Padding: "24px 24px 16px"}, nil),
			p.block(BlockTypeTable, "", BlockStyle{Padding: "0 24px 24px"}, TableSettings{
				Rows: []TableRow{
					tableRow("Product", "Qty", "Price"),
					tableRow("Wireless Headphones", "1", "$149.99"),
					tableRow("Phone Case", "2", "$29.98"),
					tableRow("Total", "", "$179.97"),
				},
				HeaderRow: true,
			}),
			p.block(BlockTypeButton, "", BlockStyle{TextAlign: "center", Padding: "24px"}, button("Track Your Order", "#059669", "8px", "14px 32px")),
			p.block(BlockTypeText, `<p style="text-align:center;font-size:14px;color:#6B7280;">Questions? Contact us at support@store.com</p>`, BlockStyle{TextAlign: "center", Padding: "0 24px 24px"}, nil),
			p.block(BlockTypeFooter, "© 2024 Your Store", BlockStyle{Padding: "24px", BackgroundColor: "#F9FAFB"}, nil),
		},
		Styles: DefaultGlobalStyles().Merge(GlobalStyles{BackgroundColor: "#F0FDF4", ContentBackgroundColor: "#ffffff", LinkColor: "#059669"}),
	}
}
