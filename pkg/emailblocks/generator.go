package emailblocks

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes user text for safe inclusion in markup and attribute values
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// entities are not decoded inside <style>, so values written there lose the
// characters that could close the element or a rule instead
var cssTextCleaner = strings.NewReplacer("<", "", ">", "", "{", "", "}", "")

func cssText(value string) string {
	return cssTextCleaner.Replace(value)
}

var socialIcons = map[string]string{
	"facebook":  "📘",
	"twitter":   "🐦",
	"linkedin":  "💼",
	"instagram": "📷",
	"youtube":   "📺",
	"tiktok":    "🎵",
	"pinterest": "📌",
	"website":   "🌐",
}

// GenerateHTML renders a complete, client-compatible email document. The output depends
// only on its arguments. Unknown block types render nothing.
func GenerateHTML(blocks []EmailBlock, styles GlobalStyles, subject, preheader string) string {
	attr := styles.escaped()
	rows := make([]string, 0, len(blocks))
	for _, block := range blocks {
		rows = append(rows, renderBlock(block, attr, false))
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="en" xmlns="http://www.w3.org/1999/xhtml" xmlns:v="urn:schemas-microsoft-com:vml" xmlns:o="urn:schemas-microsoft-com:office:office">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta http-equiv="X-UA-Compatible" content="IE=edge">
  <meta name="x-apple-disable-message-reformatting">
`)
	fmt.Fprintf(&b, "  <title>%s</title>\n", EscapeHTML(subject))
	b.WriteString(`  <!--[if mso]>
  <noscript>
    <xml>
      <o:OfficeDocumentSettings>
        <o:AllowPNG/>
        <o:PixelsPerInch>96</o:PixelsPerInch>
      </o:OfficeDocumentSettings>
    </xml>
  </noscript>
  <![endif]-->
  <style>
    body, table, td, a { -webkit-text-size-adjust: 100%; -ms-text-size-adjust: 100%; }
    table, td { mso-table-lspace: 0pt; mso-table-rspace: 0pt; }
    img { -ms-interpolation-mode: bicubic; border: 0; height: auto; line-height: 100%; outline: none; text-decoration: none; }
    body { height: 100% !important; margin: 0 !important; padding: 0 !important; width: 100% !important; }
    a[x-apple-data-detectors] { color: inherit !important; text-decoration: none !important; font-size: inherit !important; font-family: inherit !important; font-weight: inherit !important; line-height: inherit !important; }
`)
	fmt.Fprintf(&b, "    body { font-family: %s; font-size: %s; color: %s; background-color: %s; margin: 0; padding: 0; }\n",
		cssText(styles.FontFamily), cssText(styles.FontSize), cssText(styles.TextColor), cssText(styles.BackgroundColor))
	fmt.Fprintf(&b, "    .email-container { max-width: %s; margin: 0 auto; background-color: %s; border-radius: %s; }\n",
		cssText(styles.ContentWidth), cssText(styles.ContentBackgroundColor), cssText(styles.BorderRadius))
	fmt.Fprintf(&b, "    a { color: %s; }\n", cssText(styles.LinkColor))
	fmt.Fprintf(&b, "    h1, h2, h3, h4, h5, h6 { color: %s; margin: 0 0 16px 0; }\n", cssText(styles.HeadingColor))
	b.WriteString(`    p { margin: 0 0 16px 0; }
    img { max-width: 100%; height: auto; }
    @media screen and (max-width: 600px) {
      .email-container { width: 100% !important; max-width: 100% !important; }
      .responsive-table { width: 100% !important; }
      .mobile-padding { padding-left: 16px !important; padding-right: 16px !important; }
      .mobile-stack { display: block !important; width: 100% !important; }
    }
  </style>
</head>
`)
	fmt.Fprintf(&b, "<body style=\"margin: 0; padding: 0; background-color: %s;\">\n", attr.BackgroundColor)
	if preheader != "" {
		fmt.Fprintf(&b, "  <div style=\"display: none; font-size: 1px; color: %s; line-height: 1px; max-height: 0px; max-width: 0px; opacity: 0; overflow: hidden;\">%s</div>\n",
			attr.BackgroundColor, EscapeHTML(preheader))
	}
	fmt.Fprintf(&b, "  <table role=\"presentation\" cellspacing=\"0\" cellpadding=\"0\" border=\"0\" width=\"100%%\" style=\"background-color: %s;\">\n", attr.BackgroundColor)
	b.WriteString("    <tr>\n      <td align=\"center\" style=\"padding: 20px 0;\">\n")
	fmt.Fprintf(&b, "        <table role=\"presentation\" cellspacing=\"0\" cellpadding=\"0\" border=\"0\" class=\"email-container\" style=\"max-width: %s; width: 100%%; background-color: %s; border-radius: %s;\">\n",
		attr.ContentWidth, attr.ContentBackgroundColor, attr.BorderRadius)
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n        </table>\n      </td>\n    </tr>\n  </table>\n</body>\n</html>")
	return b.String()
}

// baseStyle cascades the block style over the global styles
func baseStyle(style BlockStyle, g GlobalStyles) string {
	return fmt.Sprintf("background-color: %s; color: %s; font-size: %s; font-family: %s; text-align: %s; padding: %s; line-height: %s",
		pick(style.BackgroundColor, "transparent"),
		pick(style.TextColor, g.TextColor),
		pick(style.FontSize, g.FontSize),
		pick(style.FontFamily, g.FontFamily),
		pick(style.TextAlign, "left"),
		pick(style.Padding, "16px"),
		pick(style.LineHeight, "1.5"),
	)
}

// row wraps inner markup in a padded table row
func row(style, inner string) string {
	return fmt.Sprintf("<tr>\n  <td style=\"%s;\" class=\"mobile-padding\">\n    %s\n  </td>\n</tr>", style, inner)
}

// renderBlock expects g to be escaped already; the block's own style values are
// escaped here
func renderBlock(block EmailBlock, g GlobalStyles, nested bool) string {
	block = escapeStyleValues(block)
	style := block.Style
	base := baseStyle(style, g)

	switch block.Type {
	case BlockTypeText, BlockTypeHTML:
		return row(base, block.Content)

	case BlockTypeHeading:
		weight := pick(style.FontWeight, "bold")
		color := pick(style.TextColor, g.HeadingColor)
		inner := fmt.Sprintf(`<h2 style="margin: 0; font-size: %s; font-weight: %s; color: %s;">%s</h2>`,
			pick(style.FontSize, "24px"), weight, color, EscapeHTML(block.Content))
		return row(fmt.Sprintf("%s; font-weight: %s; color: %s", base, weight, color), inner)

	case BlockTypeImage:
		img, _ := block.Settings.(ImageSettings)
		return row(fmt.Sprintf("%s; text-align: %s", base, pick(img.Alignment, "center")), renderImage(img))

	case BlockTypeButton:
		btn, _ := block.Settings.(ButtonSettings)
		radius := pick(btn.ButtonBorderRadius, "4px")
		inner := fmt.Sprintf(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" style="margin: 0 auto;"><tr><td style="border-radius: %s; background-color: %s;"><a href="%s" target="_blank" style="display: inline-block; padding: %s; font-family: %s; font-size: %s; font-weight: bold; color: %s; text-decoration: none; border-radius: %s;">%s</a></td></tr></table>`,
			radius, pick(btn.ButtonColor, "#0066cc"), EscapeHTML(pick(btn.URL, "#")), pick(btn.ButtonPadding, "12px 24px"),
			g.FontFamily, g.FontSize, pick(btn.ButtonTextColor, "#ffffff"), radius, EscapeHTML(pick(btn.Text, "Click Here")))
		return row(base, inner)

	case BlockTypeDivider:
		d, _ := block.Settings.(DividerSettings)
		inner := fmt.Sprintf(`<hr style="border: none; border-top: %s %s %s; margin: 0;" />`,
			pick(d.DividerWidth, "1px"), pick(d.DividerStyle, "solid"), pick(d.DividerColor, "#e0e0e0"))
		return row(base, inner)

	case BlockTypeSpacer:
		sp, _ := block.Settings.(SpacerSettings)
		return fmt.Sprintf("<tr>\n  <td style=\"height: %s; background-color: %s;\">&nbsp;</td>\n</tr>",
			pick(sp.SpacerHeight, "32px"), pick(style.BackgroundColor, "transparent"))

	case BlockTypeSocial:
		social, _ := block.Settings.(SocialSettings)
		var links strings.Builder
		for _, link := range social.Links {
			icon, ok := socialIcons[link.Platform]
			if !ok {
				icon = "🔗"
			}
			fmt.Fprintf(&links, `<a href="%s" target="_blank" style="display: inline-block; margin: 0 8px; text-decoration: none; font-size: 24px;">%s</a>`,
				EscapeHTML(link.URL), icon)
		}
		return row(base+"; text-align: center", links.String())

	case BlockTypeQuote:
		return row(fmt.Sprintf("%s; border-left: 4px solid %s; padding-left: 20px; font-style: italic", base, g.LinkColor),
			EscapeHTML(block.Content))

	case BlockTypeList:
		list, _ := block.Settings.(ListSettings)
		tag := "ul"
		if list.ListType == "numbered" {
			tag = "ol"
		}
		var items strings.Builder
		for _, item := range list.Items {
			fmt.Fprintf(&items, `<li style="margin-bottom: 8px;">%s</li>`, EscapeHTML(item))
		}
		return row(base, fmt.Sprintf(`<%s style="margin: 0; padding-left: 24px;">%s</%s>`, tag, items.String(), tag))

	case BlockTypeColumns:
		if nested {
			return ""
		}
		cols, _ := block.Settings.(ColumnsSettings)
		var cells strings.Builder
		for _, col := range cols.Columns {
			fmt.Fprintf(&cells, `<td style="width: %s; vertical-align: top; padding: 8px;" class="mobile-stack"><table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%">`, col.Width)
			for _, child := range col.Content {
				cells.WriteString(renderBlock(child, g, true))
			}
			cells.WriteString("</table></td>")
		}
		return row(base, fmt.Sprintf(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%"><tr>%s</tr></table>`, cells.String()))

	case BlockTypeVideo:
		video, _ := block.Settings.(VideoSettings)
		inner := ""
		if video.Thumbnail != "" {
			inner = fmt.Sprintf(`<a href="%s" target="_blank" style="display: inline-block; position: relative;"><img src="%s" alt="Video thumbnail" style="max-width: 100%%; height: auto; display: block;" /></a>`,
				EscapeHTML(pick(video.URL, "#")), EscapeHTML(video.Thumbnail))
		}
		return row(base+"; text-align: center", inner)

	case BlockTypeCountdown:
		var units strings.Builder
		for _, unit := range []string{"Days", "Hours", "Mins", "Secs"} {
			fmt.Fprintf(&units, `<td style="padding: 0 12px; text-align: center;"><div style="font-size: 32px; font-weight: bold;">00</div><div style="font-size: 12px; color: #666;">%s</div></td>`, unit)
		}
		return row(base+"; text-align: center", fmt.Sprintf(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" style="margin: 0 auto;"><tr>%s</tr></table>`, units.String()))

	case BlockTypeMenu:
		menu, _ := block.Settings.(MenuSettings)
		vertical := menu.Orientation == "vertical"
		links := make([]string, 0, len(menu.Items))
		for _, item := range menu.Items {
			spacing := "margin: 0 12px;"
			if vertical {
				spacing = "display: block; margin-bottom: 8px;"
			}
			links = append(links, fmt.Sprintf(`<a href="%s" style="color: %s; text-decoration: none; %s">%s</a>`,
				EscapeHTML(item.URL), g.LinkColor, spacing, EscapeHTML(item.Label)))
		}
		sep := " | "
		if vertical {
			sep = ""
		}
		return row(base+"; text-align: center", strings.Join(links, sep))

	case BlockTypeFooter:
		inner := fmt.Sprintf(`<p style="margin: 0 0 8px 0;">%s</p><p style="margin: 0;"><a href="{{unsubscribe_url}}" style="color: %s;">Unsubscribe</a>&nbsp;|&nbsp;<a href="#" style="color: %s;">View in browser</a></p>`,
			EscapeHTML(pick(block.Content, DefaultContent(BlockTypeFooter))), g.LinkColor, g.LinkColor)
		return row(base+"; text-align: center; font-size: 12px; color: #666666", inner)

	case BlockTypeTable:
		return row(base, renderTable(block.Settings))

	case BlockTypeHero:
		hero, _ := block.Settings.(HeroSettings)
		bg := pick(hero.BackgroundColor, "#4F46E5")
		var inner strings.Builder
		fmt.Fprintf(&inner, `<h1 style="font-size: 36px; font-weight: bold; color: #ffffff; margin: 0 0 16px 0;">%s</h1>`, EscapeHTML(pick(hero.Title, "Hero Title")))
		if hero.Subtitle != "" {
			fmt.Fprintf(&inner, `<p style="font-size: 18px; color: rgba(255,255,255,0.8); margin: 0 0 24px 0;">%s</p>`, EscapeHTML(hero.Subtitle))
		}
		if hero.ButtonText != "" {
			fmt.Fprintf(&inner, `<a href="%s" style="display: inline-block; background-color: #ffffff; color: %s; padding: 14px 32px; border-radius: 8px; text-decoration: none; font-weight: bold;">%s</a>`,
				EscapeHTML(pick(hero.ButtonURL, "#")), bg, EscapeHTML(hero.ButtonText))
		}
		return row(fmt.Sprintf("text-align: center; background-color: %s; padding: 48px 24px", bg), inner.String())

	case BlockTypeTestimonial:
		t, _ := block.Settings.(TestimonialSettings)
		var inner strings.Builder
		if t.Rating > 0 {
			fmt.Fprintf(&inner, `<div style="font-size: 24px; margin-bottom: 16px;">%s</div>`, strings.Repeat("⭐", t.Rating))
		}
		fmt.Fprintf(&inner, `<p style="font-size: 18px; font-style: italic; margin: 0 0 16px 0;">"%s"</p>`, EscapeHTML(pick(t.Quote, "Customer testimonial")))
		fmt.Fprintf(&inner, `<p style="font-weight: bold; margin: 0;">%s</p>`, EscapeHTML(pick(t.Author, "Customer Name")))
		if t.Role != "" || t.Company != "" {
			sep := ""
			if t.Role != "" && t.Company != "" {
				sep = " at "
			}
			fmt.Fprintf(&inner, `<p style="font-size: 14px; color: #6B7280; margin: 4px 0 0 0;">%s%s%s</p>`, EscapeHTML(t.Role), sep, EscapeHTML(t.Company))
		}
		return row(base+"; text-align: center; padding: 32px 24px", inner.String())

	case BlockTypePricing:
		p, _ := block.Settings.(PricingSettings)
		var features strings.Builder
		for _, f := range p.Features {
			fmt.Fprintf(&features, `<li style="padding: 8px 0; border-bottom: 1px solid #E5E7EB;">✓ %s</li>`, EscapeHTML(f))
		}
		border := "1px solid #E5E7EB"
		if p.Highlighted {
			border = "2px solid " + g.LinkColor
		}
		inner := fmt.Sprintf(`<div style="border: %s; border-radius: 12px; padding: 24px;"><p style="font-weight: bold; font-size: 18px; margin: 0 0 8px 0;">%s</p><p style="font-size: 48px; font-weight: bold; color: %s; margin: 0;">%s<span style="font-size: 16px; color: #6B7280;">%s</span></p><ul style="list-style: none; padding: 24px 0; margin: 0; text-align: left;">%s</ul>%s</div>`,
			border, EscapeHTML(pick(p.PlanName, "Plan")), g.LinkColor, EscapeHTML(pick(p.Price, "$29")), EscapeHTML(pick(p.Period, "/month")),
			features.String(), linkButton(pick(p.ButtonURL, "#"), pick(p.ButtonText, "Get Started"), g.LinkColor, "#ffffff"))
		return row(base+"; text-align: center; padding: 32px 24px", inner)

	case BlockTypeFeature:
		return row(base, renderFeature(block.Settings, g))

	case BlockTypeCTA:
		cta, _ := block.Settings.(CTASettings)
		var inner strings.Builder
		fmt.Fprintf(&inner, `<h2 style="font-size: 28px; font-weight: bold; color: #ffffff; margin: 0 0 12px 0;">%s</h2>`, EscapeHTML(pick(cta.Headline, "Ready to Get Started?")))
		if cta.Subheadline != "" {
			fmt.Fprintf(&inner, `<p style="font-size: 16px; color: rgba(255,255,255,0.8); margin: 0 0 24px 0;">%s</p>`, EscapeHTML(cta.Subheadline))
		}
		inner.WriteString(linkButton(pick(cta.ButtonURL, "#"), pick(cta.ButtonText, "Get Started"), "#ffffff", g.LinkColor))
		return row(fmt.Sprintf("text-align: center; background-color: %s; padding: 48px 24px; border-radius: 12px", g.LinkColor), inner.String())

	case BlockTypeImageText:
		return row(base, renderImageText(block.Settings, g))

	case BlockTypeGallery:
		return row(base, renderGallery(block.Settings))

	case BlockTypeStats:
		stats, _ := block.Settings.(StatsSettings)
		var cells strings.Builder
		for _, stat := range stats.Stats {
			fmt.Fprintf(&cells, `<td style="text-align: center; padding: 16px;"><div style="font-size: 36px; font-weight: bold; color: %s;">%s%s%s</div><div style="font-size: 14px; color: #6B7280;">%s</div></td>`,
				g.LinkColor, EscapeHTML(stat.Prefix), EscapeHTML(stat.Value), EscapeHTML(stat.Suffix), EscapeHTML(stat.Label))
		}
		return row(base, fmt.Sprintf(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%"><tr>%s</tr></table>`, cells.String()))

	case BlockTypeFAQ:
		faq, _ := block.Settings.(FAQSettings)
		var inner strings.Builder
		for _, item := range faq.Items {
			fmt.Fprintf(&inner, `<div style="margin-bottom: 16px;"><p style="font-weight: bold; margin: 0 0 4px 0;">%s</p><p style="margin: 0; color: #6B7280;">%s</p></div>`,
				EscapeHTML(item.Question), EscapeHTML(item.Answer))
		}
		return row(base, inner.String())

	case BlockTypeSignature:
		return row(base+"; padding: 24px", renderSignature(block.Settings))

	case BlockTypeURL:
		return renderURL(block.Settings, base, g)

	case BlockTypeCalendar:
		return row(base, renderCalendar(block.Settings, g))

	case BlockTypeMap:
		m, _ := block.Settings.(MapSettings)
		image := `<div style="width: 100%; height: 200px; background-color: #F3F4F6; color: #9CA3AF; text-align: center; line-height: 200px;">📍 Map</div>`
		if m.MapImageURL != "" {
			image = fmt.Sprintf(`<img src="%s" alt="Map" style="width: 100%%; height: 200px; object-fit: cover;" />`, EscapeHTML(m.MapImageURL))
		}
		inner := fmt.Sprintf(`<div style="border: 1px solid #E5E7EB; border-radius: 12px; overflow: hidden;">%s<div style="padding: 16px;"><p style="font-weight: bold; margin: 0 0 8px 0;">📍 %s</p><a href="%s" style="color: %s; font-size: 14px;">Get Directions →</a></div></div>`,
			image, EscapeHTML(pick(m.Address, "Address")), EscapeHTML(pick(m.DirectionsURL, "#")), g.LinkColor)
		return row(base, inner)

	case BlockTypeCoupon:
		return row(base, renderCoupon(block.Settings, g))

	case BlockTypeRating:
		return row(base+"; text-align: center", renderRating(block.Settings))

	case BlockTypeProgress:
		return row(base, renderProgress(block.Settings, g))

	case BlockTypeAccordion:
		acc, _ := block.Settings.(AccordionSettings)
		var inner strings.Builder
		for _, item := range acc.Items {
			fmt.Fprintf(&inner, `<div style="border-bottom: 1px solid #E5E7EB; margin-bottom: 8px;"><p style="font-weight: bold; padding: 12px 0; margin: 0;">%s ▼</p><p style="padding: 0 0 12px 0; margin: 0; color: #6B7280;">%s</p></div>`,
				EscapeHTML(item.Title), EscapeHTML(item.Content))
		}
		if inner.Len() == 0 {
			inner.WriteString(`<p style="text-align: center; color: #9CA3AF;">No accordion items</p>`)
		}
		return row(base, inner.String())

	case BlockTypeIconList:
		list, _ := block.Settings.(IconListSettings)
		var inner strings.Builder
		for _, item := range list.Items {
			sub := ""
			if item.Subtext != "" {
				sub = fmt.Sprintf(`<p style="font-size: 14px; color: #6B7280; margin: 4px 0 0 0;">%s</p>`, EscapeHTML(item.Subtext))
			}
			fmt.Fprintf(&inner, `<table role="presentation" cellspacing="0" cellpadding="0" border="0" style="margin-bottom: 16px;"><tr><td style="font-size: 24px; color: %s; padding-right: 12px; vertical-align: top;">%s</td><td><p style="font-weight: bold; margin: 0;">%s</p>%s</td></tr></table>`,
				pick(list.IconColor, g.LinkColor), EscapeHTML(item.Icon), EscapeHTML(item.Text), sub)
		}
		if inner.Len() == 0 {
			inner.WriteString(`<p style="text-align: center; color: #9CA3AF;">No items</p>`)
		}
		return row(base, inner.String())

	case BlockTypeBeforeAfter:
		ba, _ := block.Settings.(BeforeAfterSettings)
		inner := fmt.Sprintf(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%"><tr>%s%s</tr></table>`,
			beforeAfterCell(pick(ba.BeforeLabel, "Before"), ba.BeforeImage, "Before"),
			beforeAfterCell(pick(ba.AfterLabel, "After"), ba.AfterImage, "After"))
		return row(base, inner)

	default:
		return ""
	}
}

func renderImage(img ImageSettings) string {
	if img.Src == "" {
		return ""
	}
	tag := fmt.Sprintf(`<img src="%s" alt="%s" style="max-width: %s; height: %s; display: block; margin: 0 auto;" />`,
		EscapeHTML(img.Src), EscapeHTML(img.Alt), pick(img.Width, "100%"), pick(img.Height, "auto"))
	if img.Link != "" {
		return fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`, EscapeHTML(img.Link), tag)
	}
	return tag
}

func linkButton(url, text, background, color string) string {
	return fmt.Sprintf(`<a href="%s" style="display: inline-block; background-color: %s; color: %s; padding: 14px 32px; border-radius: 8px; text-decoration: none; font-weight: bold;">%s</a>`,
		EscapeHTML(url), background, color, EscapeHTML(text))
}

func renderTable(settings Settings) string {
	table, _ := settings.(TableSettings)
	var rows strings.Builder
	for i, r := range table.Rows {
		rows.WriteString("<tr>")
		for _, cell := range r.Cells {
			if table.HeaderRow && i == 0 {
				fmt.Fprintf(&rows, `<th style="padding: 12px; border: 1px solid #ddd; background-color: #f5f5f5; font-weight: bold; text-align: left;">%s</th>`, EscapeHTML(cell.Content))
				continue
			}
			fmt.Fprintf(&rows, `<td style="padding: 12px; border: 1px solid #ddd; text-align: left;">%s</td>`, EscapeHTML(cell.Content))
		}
		rows.WriteString("</tr>")
	}
	return fmt.Sprintf(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%" style="border-collapse: collapse;">%s</table>`, rows.String())
}

func renderFeature(settings Settings, g GlobalStyles) string {
	f, _ := settings.(FeatureSettings)
	media := fmt.Sprintf(`<div style="font-size: 40px; line-height: 1;">%s</div>`, EscapeHTML(f.Icon))
	if f.ImageURL != "" {
		media = fmt.Sprintf(`<img src="%s" alt="%s" style="max-width: 120px; height: auto; display: block;" />`, EscapeHTML(f.ImageURL), EscapeHTML(f.Title))
	}
	text := fmt.Sprintf(`<p style="font-weight: bold; font-size: 18px; color: %s; margin: 0 0 8px 0;">%s</p><p style="margin: 0; color: #6B7280;">%s</p>`,
		g.HeadingColor, EscapeHTML(pick(f.Title, "Feature Title")), EscapeHTML(f.Description))

	if f.ImagePosition == "top" {
		return fmt.Sprintf(`<div style="text-align: center;"><div style="margin-bottom: 12px;">%s</div>%s</div>`, media, text)
	}
	mediaCell := fmt.Sprintf(`<td style="width: 64px; vertical-align: top; padding-right: 16px;">%s</td>`, media)
	textCell := fmt.Sprintf(`<td style="vertical-align: top;">%s</td>`, text)
	if f.ImagePosition == "right" {
		mediaCell = strings.Replace(mediaCell, "padding-right", "padding-left", 1)
		return fmt.Sprintf(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%"><tr>%s%s</tr></table>`, textCell, mediaCell)
	}
	return fmt.Sprintf(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%"><tr>%s%s</tr></table>`, mediaCell, textCell)
}

func renderImageText(settings Settings, g GlobalStyles) string {
	it, _ := settings.(ImageTextSettings)
	imageCell := fmt.Sprintf(`<td style="width: 50%%; vertical-align: top; padding: 8px;" class="mobile-stack"><img src="%s" alt="%s" style="width: 100%%; height: auto; display: block; border-radius: 8px;" /></td>`,
		EscapeHTML(it.ImageURL), EscapeHTML(it.ImageAlt))
	var text strings.Builder
	fmt.Fprintf(&text, `<p style="font-weight: bold; font-size: 20px; color: %s; margin: 0 0 8px 0;">%s</p>`, g.HeadingColor, EscapeHTML(pick(it.Title, "Section Title")))
	if it.Description != "" {
		fmt.Fprintf(&text, `<p style="margin: 0 0 16px 0;">%s</p>`, EscapeHTML(it.Description))
	}
	if it.ButtonText != "" {
		text.WriteString(linkButton(pick(it.ButtonURL, "#"), it.ButtonText, g.LinkColor, "#ffffff"))
	}
	textCell := fmt.Sprintf(`<td style="width: 50%%; vertical-align: middle; padding: 8px;" class="mobile-stack">%s</td>`, text.String())

	cells := imageCell + textCell
	if it.ImagePosition == "right" {
		cells = textCell + imageCell
	}
	return fmt.Sprintf(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%"><tr>%s</tr></table>`, cells)
}

func renderGallery(settings Settings) string {
	gallery, _ := settings.(GallerySettings)
	perRow := gallery.Columns
	if perRow < 1 {
		perRow = 3
	}
	width := fmt.Sprintf("%d%%", 100/perRow)

	var rows strings.Builder
	for i, img := range gallery.Images {
		if i%perRow == 0 {
			if i > 0 {
				rows.WriteString("</tr>")
			}
			rows.WriteString("<tr>")
		}
		tag := fmt.Sprintf(`<img src="%s" alt="%s" style="width: 100%%; height: auto; display: block; border-radius: 4px;" />`, EscapeHTML(img.Src), EscapeHTML(img.Alt))
		if img.Link != "" {
			tag = fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`, EscapeHTML(img.Link), tag)
		}
		fmt.Fprintf(&rows, `<td style="width: %s; padding: 4px; vertical-align: top;" class="mobile-stack">%s</td>`, width, tag)
	}
	if len(gallery.Images) > 0 {
		rows.WriteString("</tr>")
	}
	return fmt.Sprintf(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%">%s</table>`, rows.String())
}

func renderSignature(settings Settings) string {
	sig, _ := settings.(SignatureSettings)
	var b strings.Builder
	fmt.Fprintf(&b, `<p style="font-weight: bold; font-size: 16px; margin: 0;">%s</p>`, EscapeHTML(pick(sig.Name, "Your Name")))
	if sig.Title != "" {
		fmt.Fprintf(&b, `<p style="color: #6B7280; margin: 4px 0 0 0;">%s</p>`, EscapeHTML(sig.Title))
	}
	if sig.Company != "" {
		fmt.Fprintf(&b, `<p style="color: #6B7280; margin: 4px 0 0 0;">%s</p>`, EscapeHTML(sig.Company))
	}
	b.WriteString(`<div style="margin-top: 12px; font-size: 14px;">`)
	for _, line := range []struct{ icon, value string }{{"📧", sig.Email}, {"📞", sig.Phone}, {"🌐", sig.Website}} {
		if line.value != "" {
			fmt.Fprintf(&b, `<p style="margin: 4px 0;">%s %s</p>`, line.icon, EscapeHTML(line.value))
		}
	}
	b.WriteString("</div>")
	return b.String()
}

func renderURL(settings Settings, base string, g GlobalStyles) string {
	u, _ := settings.(URLSettings)
	href := EscapeHTML(pick(u.URL, "#"))
	switch u.Style {
	case "card":
		desc := ""
		if u.Description != "" {
			desc = fmt.Sprintf(`<p style="font-size: 14px; color: #6B7280; margin: 8px 0 0 0;">%s</p>`, EscapeHTML(u.Description))
		}
		return row(base, fmt.Sprintf(`<div style="border: 1px solid #E5E7EB; border-radius: 8px; padding: 16px;"><a href="%s" style="color: %s; font-weight: bold; text-decoration: none;">%s</a>%s</div>`,
			href, g.LinkColor, EscapeHTML(pick(u.DisplayText, "Link")), desc))
	case "button":
		return row(base+"; text-align: center", fmt.Sprintf(`<a href="%s" style="display: inline-block; background-color: %s; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none; font-weight: bold;">%s</a>`,
			href, g.LinkColor, EscapeHTML(pick(u.DisplayText, "Click Here"))))
	default:
		return row(base, fmt.Sprintf(`<a href="%s" style="color: %s;">%s</a>`, href, g.LinkColor, EscapeHTML(pick(u.DisplayText, pick(u.URL, "Link")))))
	}
}

var calendarDateLayouts = []string{"2006-01-02", "2006-01-02T15:04", time.RFC3339}

func renderCalendar(settings Settings, g GlobalStyles) string {
	cal, _ := settings.(CalendarSettings)
	month, day := "TBA", "--"
	for _, layout := range calendarDateLayouts {
		if t, err := time.Parse(layout, cal.EventDate); err == nil {
			month, day = t.Format("Jan"), fmt.Sprint(t.Day())
			break
		}
	}

	var details strings.Builder
	fmt.Fprintf(&details, `<p style="font-weight: bold; font-size: 18px; margin: 0 0 8px 0;">%s</p>`, EscapeHTML(pick(cal.EventTitle, "Event")))
	if cal.EventTime != "" {
		fmt.Fprintf(&details, `<p style="color: #6B7280; margin: 0 0 4px 0;">🕐 %s</p>`, EscapeHTML(cal.EventTime))
	}
	if cal.EventLocation != "" {
		fmt.Fprintf(&details, `<p style="color: #6B7280; margin: 0 0 8px 0;">📍 %s</p>`, EscapeHTML(cal.EventLocation))
	}
	if cal.EventDescription != "" {
		fmt.Fprintf(&details, `<p style="font-size: 14px; color: #6B7280; margin: 0 0 12px 0;">%s</p>`, EscapeHTML(cal.EventDescription))
	}
	fmt.Fprintf(&details, `<a href="%s" style="display: inline-block; background-color: %s; color: #ffffff; padding: 10px 20px; border-radius: 6px; text-decoration: none; font-size: 14px;">📅 Add to Calendar</a>`,
		EscapeHTML(pick(cal.AddToCalendarURL, "#")), g.LinkColor)

	return fmt.Sprintf(`<div style="border: 1px solid #E5E7EB; border-radius: 12px; overflow: hidden;"><div style="background-color: %s; color: #ffffff; padding: 16px; text-align: center;"><div style="font-size: 14px; text-transform: uppercase; letter-spacing: 1px;">%s</div><div style="font-size: 36px; font-weight: bold;">%s</div></div><div style="padding: 16px;">%s</div></div>`,
		g.LinkColor, month, day, details.String())
}

func renderCoupon(settings Settings, g GlobalStyles) string {
	c, _ := settings.(CouponSettings)
	color := pick(c.BackgroundColor, g.LinkColor)
	var b strings.Builder
	fmt.Fprintf(&b, `<div style="border: 2px %s %s; border-radius: 12px; padding: 24px; text-align: center; background-color: %s10;">`, pick(c.BorderStyle, "dashed"), color, color)
	b.WriteString(`<p style="font-size: 14px; color: #6B7280; margin: 0 0 8px 0;">🎟️ COUPON CODE</p>`)
	fmt.Fprintf(&b, `<p style="font-size: 32px; font-weight: bold; color: %s; letter-spacing: 4px; margin: 0 0 8px 0;">%s</p>`, color, EscapeHTML(pick(c.Code, "SAVE20")))
	fmt.Fprintf(&b, `<p style="font-size: 24px; font-weight: bold; margin: 0 0 8px 0;">%s</p>`, EscapeHTML(pick(c.Discount, "20% OFF")))
	if c.Description != "" {
		fmt.Fprintf(&b, `<p style="color: #6B7280; margin: 0 0 8px 0;">%s</p>`, EscapeHTML(c.Description))
	}
	if c.ExpiryDate != "" {
		fmt.Fprintf(&b, `<p style="font-size: 12px; color: #9CA3AF; margin: 0;">Expires: %s</p>`, EscapeHTML(c.ExpiryDate))
	}
	if c.Terms != "" {
		fmt.Fprintf(&b, `<p style="font-size: 11px; color: #9CA3AF; margin: 8px 0 0 0;">%s</p>`, EscapeHTML(c.Terms))
	}
	b.WriteString("</div>")
	return b.String()
}

func renderRating(settings Settings) string {
	r, _ := settings.(RatingSettings)
	value := r.Rating
	if value == 0 {
		value = 5
	}
	maxRating := r.MaxRating
	if maxRating == 0 {
		maxRating = 5
	}
	full, empty := "⭐", "☆"
	switch r.Style {
	case "hearts":
		full, empty = "❤️", "🤍"
	case "circles":
		full, empty = "●", "○"
	}

	var icons strings.Builder
	for i := 0; i < maxRating; i++ {
		if i < value {
			icons.WriteString(full)
		} else {
			icons.WriteString(empty)
		}
	}
	out := fmt.Sprintf(`<div style="font-size: 24px; letter-spacing: 4px;">%s</div>`, icons.String())
	if r.ShowNumber {
		out += fmt.Sprintf(`<p style="font-size: 14px; color: #6B7280; margin: 8px 0 0 0;">%d / %d</p>`, value, maxRating)
	}
	return out
}

func renderProgress(settings Settings, g GlobalStyles) string {
	p, _ := settings.(ProgressSettings)
	value := p.Value
	if value == 0 {
		value = 75
	}
	maxValue := p.Max
	if maxValue == 0 {
		maxValue = 100
	}
	percent := int(math.Round(float64(value) / float64(maxValue) * 100))

	label := ""
	if p.Label != "" {
		label = fmt.Sprintf(`<p style="margin: 0 0 8px 0; font-weight: bold;">%s</p>`, EscapeHTML(p.Label))
	}
	shown := ""
	if p.ShowPercentage {
		shown = fmt.Sprintf("%d%%", percent)
	}
	return fmt.Sprintf(`%s<div style="background-color: #E5E7EB; border-radius: 999px; height: 24px; overflow: hidden;"><div style="background-color: %s; height: 100%%; width: %d%%; border-radius: 999px; text-align: center; line-height: 24px; color: #ffffff; font-size: 12px; font-weight: bold;">%s</div></div>`,
		label, pick(p.Color, g.LinkColor), percent, shown)
}

func beforeAfterCell(label, image, alt string) string {
	media := fmt.Sprintf(`<div style="background-color: #F3F4F6; padding: 40px; border-radius: 8px; color: #9CA3AF;">%s</div>`, alt)
	if image != "" {
		media = fmt.Sprintf(`<img src="%s" alt="%s" style="width: 100%%; border-radius: 8px;" />`, EscapeHTML(image), alt)
	}
	return fmt.Sprintf(`<td style="width: 50%%; text-align: center; padding: 8px;"><p style="font-size: 12px; font-weight: bold; color: #6B7280; text-transform: uppercase; margin: 0 0 8px 0;">%s</p>%s</td>`,
		EscapeHTML(label), media)
}

// escaped returns the styles with every value escaped for use inside an attribute
func (g GlobalStyles) escaped() GlobalStyles {
	return GlobalStyles{
		BackgroundColor:        EscapeHTML(g.BackgroundColor),
		ContentWidth:           EscapeHTML(g.ContentWidth),
		ContentBackgroundColor: EscapeHTML(g.ContentBackgroundColor),
		BorderRadius:           EscapeHTML(g.BorderRadius),
		FontFamily:             EscapeHTML(g.FontFamily),
		FontSize:               EscapeHTML(g.FontSize),
		TextColor:              EscapeHTML(g.TextColor),
		LinkColor:              EscapeHTML(g.LinkColor),
		HeadingColor:           EscapeHTML(g.HeadingColor),
	}
}

// escapeStyleValues escapes the block style and the settings values that end up
// inside style attributes. Text and URLs are escaped where they are written.
func escapeStyleValues(block EmailBlock) EmailBlock {
	st := block.Style
	block.Style = BlockStyle{
		BackgroundColor: EscapeHTML(st.BackgroundColor),
		TextColor:       EscapeHTML(st.TextColor),
		FontSize:        EscapeHTML(st.FontSize),
		FontFamily:      EscapeHTML(st.FontFamily),
		FontWeight:      EscapeHTML(st.FontWeight),
		TextAlign:       EscapeHTML(st.TextAlign),
		Padding:         EscapeHTML(st.Padding),
		LineHeight:      EscapeHTML(st.LineHeight),
	}

	switch s := block.Settings.(type) {
	case ButtonSettings:
		s.ButtonColor = EscapeHTML(s.ButtonColor)
		s.ButtonTextColor = EscapeHTML(s.ButtonTextColor)
		s.ButtonBorderRadius = EscapeHTML(s.ButtonBorderRadius)
		s.ButtonPadding = EscapeHTML(s.ButtonPadding)
		block.Settings = s
	case DividerSettings:
		s.DividerStyle = EscapeHTML(s.DividerStyle)
		s.DividerColor = EscapeHTML(s.DividerColor)
		s.DividerWidth = EscapeHTML(s.DividerWidth)
		block.Settings = s
	case SpacerSettings:
		s.SpacerHeight = EscapeHTML(s.SpacerHeight)
		block.Settings = s
	case ImageSettings:
		s.Alignment = EscapeHTML(s.Alignment)
		s.Width = EscapeHTML(s.Width)
		s.Height = EscapeHTML(s.Height)
		block.Settings = s
	case HeroSettings:
		s.BackgroundColor = EscapeHTML(s.BackgroundColor)
		block.Settings = s
	case CouponSettings:
		s.BorderStyle = EscapeHTML(s.BorderStyle)
		s.BackgroundColor = EscapeHTML(s.BackgroundColor)
		block.Settings = s
	case ProgressSettings:
		s.Color = EscapeHTML(s.Color)
		block.Settings = s
	case IconListSettings:
		s.IconColor = EscapeHTML(s.IconColor)
		block.Settings = s
	case ColumnsSettings:
		columns := make([]Column, len(s.Columns))
		for i, col := range s.Columns {
			columns[i] = Column{Width: EscapeHTML(col.Width), Content: col.Content}
		}
		block.Settings = ColumnsSettings{Columns: columns}
	}
	return block
}
