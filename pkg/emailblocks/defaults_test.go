package emailblocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withClock(t *testing.T, at time.Time) {
	t.Helper()
	previous := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = previous })
}

func TestDefaultSettingsIsTotal(t *testing.T) {
	contentOnly := map[BlockType]bool{
		BlockTypeText:    true,
		BlockTypeHeading: true,
		BlockTypeQuote:   true,
		BlockTypeFooter:  true,
		BlockTypeHTML:    true,
	}

	for _, blockType := range AllBlockTypes {
		t.Run(string(blockType), func(t *testing.T) {
			settings := DefaultSettings(blockType)
			require.NotNil(t, settings)
			if contentOnly[blockType] {
				assert.Equal(t, NoSettings{}, settings)
				return
			}
			assert.NotEqual(t, NoSettings{}, settings)
			if key := settings.settingsKey(); key != "" {
				assert.Equal(t, string(blockType), key)
			}
		})
	}

	assert.Equal(t, NoSettings{}, DefaultSettings("unknown"))
}

func TestDefaultContent(t *testing.T) {
	assert.Equal(t, "<p>Click to edit this text block. You can add your content here.</p>", DefaultContent(BlockTypeText))
	assert.Equal(t, "Your Heading Here", DefaultContent(BlockTypeHeading))
	assert.Equal(t, "Add your quote here...", DefaultContent(BlockTypeQuote))
	assert.Equal(t, "© 2024 Your Company. All rights reserved.", DefaultContent(BlockTypeFooter))
	assert.Equal(t, "", DefaultContent(BlockTypeButton))
	assert.Equal(t, "", DefaultContent("unknown"))
}

func TestDefaultSettingsPlaceholders(t *testing.T) {
	withClock(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC))

	pricing := DefaultSettings(BlockTypePricing).(PricingSettings)
	assert.Equal(t, "Pro Plan", pricing.PlanName)
	assert.Equal(t, "$29", pricing.Price)
	assert.Equal(t, []string{"Feature 1", "Feature 2", "Feature 3", "Feature 4"}, pricing.Features)

	countdown := DefaultSettings(BlockTypeCountdown).(CountdownSettings)
	assert.Equal(t, "2025-03-17T09:30", countdown.TargetDate)
	assert.Equal(t, "Offer has expired", countdown.ExpiredMessage)

	calendar := DefaultSettings(BlockTypeCalendar).(CalendarSettings)
	assert.Equal(t, "2025-03-17", calendar.EventDate)

	cols := DefaultSettings(BlockTypeColumns).(ColumnsSettings)
	require.Len(t, cols.Columns, 2)
	for _, col := range cols.Columns {
		assert.Equal(t, "50%", col.Width)
		assert.NotNil(t, col.Content)
	}
}

func TestDefaultSettingsAreIndependent(t *testing.T) {
	first := DefaultSettings(BlockTypeList).(ListSettings)
	first.Items[0] = "changed"
	second := DefaultSettings(BlockTypeList).(ListSettings)
	assert.Equal(t, "Item 1", second.Items[0])
}

func TestNewBlock(t *testing.T) {
	block := NewBlock("h1", BlockTypeHeading)
	assert.Equal(t, "h1", block.ID)
	assert.Equal(t, BlockTypeHeading, block.Type)
	assert.Equal(t, "Your Heading Here", block.Content)
	assert.Equal(t, DefaultBlockStyle(), block.Style)
	assert.Equal(t, NoSettings{}, block.Settings)
}
