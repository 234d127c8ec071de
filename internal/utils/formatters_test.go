package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paytrack/internal/models"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "₹500", FormatMoney(500))
	assert.Equal(t, "₹500.50", FormatMoney(500.5))
	assert.Equal(t, "₹0", FormatMoney(0))
}

func TestFormatDateForDisplay(t *testing.T) {
	assert.Equal(t, "-", FormatDateForDisplay(time.Time{}))
	assert.Equal(t, "05/01/2024", FormatDateForDisplay(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestFormatOptionalText(t *testing.T) {
	assert.Equal(t, "-", FormatOptionalText(models.NullString{}))
	assert.Equal(t, "-", FormatOptionalText(models.NewNullString("")))
	assert.Equal(t, "paid in advance", FormatOptionalText(models.NewNullString("paid in advance")))
}

func TestTitleCaseStatus(t *testing.T) {
	assert.Equal(t, "Present", TitleCaseStatus("present"))
	assert.Equal(t, "Half-Day", TitleCaseStatus("half-day"))
	assert.Equal(t, "Leave", TitleCaseStatus("leave"))
}

func TestBuildUPILink(t *testing.T) {
	link := BuildUPILink("farm@upi", "PayTrack Farm", 1500, "June wages")

	assert.True(t, strings.HasPrefix(link, "upi://pay?"))
	assert.Contains(t, link, "pa=farm%40upi")
	assert.Contains(t, link, "am=1500.00")
	assert.Contains(t, link, "cu=INR")
	assert.Contains(t, link, "tn=June+wages")
}

func TestBuildUPILinkOmitsEmptyParts(t *testing.T) {
	link := BuildUPILink("farm@upi", "", 0, "")

	assert.NotContains(t, link, "pn=")
	assert.NotContains(t, link, "am=")
	assert.NotContains(t, link, "tn=")
}

func TestGenerateUPIQR(t *testing.T) {
	png, err := GenerateUPIQR("farm@upi", "PayTrack Farm", 250, "test")
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	_, err = GenerateUPIQR("", "", 0, "")
	assert.Error(t, err)
}
