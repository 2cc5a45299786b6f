package emailblocks

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var headingSizes = map[string]string{
	"h1": "36px",
	"h2": "28px",
	"h3": "24px",
}

// ParseHTML converts legacy email HTML into blocks. Only the direct children of the
// content container are classified; anything unrecognised is skipped. When nothing is
// recognised, the input is kept verbatim as a single html block.
func ParseHTML(html string, ids IDGenerator) []EmailBlock {
	blocks := []EmailBlock{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		container := doc.Find(`[style*="max-width"]`).First()
		if container.Length() == 0 {
			container = doc.Find("body").First()
		}

		container.Children().Each(func(_ int, el *goquery.Selection) {
			if block, ok := classifyElement(el, ids); ok {
				blocks = append(blocks, block)
			}
		})
	}

	if len(blocks) == 0 && strings.TrimSpace(html) != "" {
		blocks = append(blocks, EmailBlock{
			ID:       ids.NewID(),
			Type:     BlockTypeHTML,
			Content:  html,
			Style:    DefaultBlockStyle(),
			Settings: NoSettings{},
		})
	}
	return blocks
}

func classifyElement(el *goquery.Selection, ids IDGenerator) (EmailBlock, bool) {
	tag := goquery.NodeName(el)
	style := DefaultBlockStyle()

	switch tag {
	case "h1", "h2", "h3":
		style.FontSize = headingSizes[tag]
		return EmailBlock{
			ID:       ids.NewID(),
			Type:     BlockTypeHeading,
			Content:  el.Text(),
			Style:    style,
			Settings: NoSettings{},
		}, true

	case "p", "div":
		inner, _ := el.Html()
		if strings.Contains(inner, "<a") && strings.Contains(inner, "display") && strings.Contains(inner, "inline-block") {
			link := el.Find("a").First()
			if link.Length() == 0 {
				return EmailBlock{}, false
			}
			btn := defaultButtonSettings()
			btn.Text = pick(link.Text(), "Click Here")
			href, _ := link.Attr("href")
			btn.URL = pick(href, "#")
			return EmailBlock{
				ID:       ids.NewID(),
				Type:     BlockTypeButton,
				Style:    style,
				Settings: btn,
			}, true
		}
		if strings.TrimSpace(el.Text()) == "" {
			return EmailBlock{}, false
		}
		return EmailBlock{
			ID:       ids.NewID(),
			Type:     BlockTypeText,
			Content:  "<p>" + inner + "</p>",
			Style:    style,
			Settings: NoSettings{},
		}, true

	case "img":
		src, _ := el.Attr("src")
		alt, _ := el.Attr("alt")
		return EmailBlock{
			ID:       ids.NewID(),
			Type:     BlockTypeImage,
			Style:    style,
			Settings: ImageSettings{Src: src, Alt: alt, Alignment: "center"},
		}, true

	case "hr":
		return EmailBlock{
			ID:       ids.NewID(),
			Type:     BlockTypeDivider,
			Style:    style,
			Settings: DividerSettings{DividerStyle: "solid", DividerColor: "#e0e0e0", DividerWidth: "1px"},
		}, true

	case "ul", "ol":
		items := []string{}
		el.Find("li").Each(func(_ int, li *goquery.Selection) {
			items = append(items, li.Text())
		})
		listType := "bullet"
		if tag == "ol" {
			listType = "numbered"
		}
		return EmailBlock{
			ID:       ids.NewID(),
			Type:     BlockTypeList,
			Style:    style,
			Settings: ListSettings{Items: items, ListType: listType},
		}, true
	}

	return EmailBlock{}, false
}
