package notify

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/coder-dkr/doomswear/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder(status string) *models.Order {
	return &models.Order{
		OrderNumber: "ORD-TEST00000001",
		Status:      status,
		CustomerInfo: models.CustomerInfo{
			FullName: "Test Shopper",
			Email:    "shopper@test.com",
			Address:  "1 Main St",
			City:     "Pune",
			State:    "MH",
			ZipCode:  "411001",
		},
		Product: models.ProductSnapshot{
			Name:     "Friends Vector Designing Hoodie",
			Price:    decimal.NewFromInt(799),
			Color:    "Black",
			Size:     "L",
			Quantity: 1,
		},
		TotalAmount: decimal.NewFromInt(799),
	}
}

func render(t *testing.T, tmplText string, order *models.Order) string {
	t.Helper()
	tmpl, err := template.New("t").Parse(tmplText)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, order))
	return buf.String()
}

func TestConfirmationTemplate(t *testing.T) {
	body := render(t, confirmationTemplate, sampleOrder(models.StatusSuccess))
	assert.Contains(t, body, "Order #ORD-TEST00000001")
	assert.Contains(t, body, "Test Shopper")
	assert.Contains(t, body, "Friends Vector Designing Hoodie")
	assert.Contains(t, body, "Color: Black, Size: L")
	assert.Contains(t, body, "Pune")
}

func TestFailureTemplateReasonBranches(t *testing.T) {
	declined := render(t, failureTemplate, sampleOrder(models.StatusDeclined))
	assert.Contains(t, declined, "declined by your bank")

	errored := render(t, failureTemplate, sampleOrder(models.StatusError))
	assert.Contains(t, errored, "technical issue")
}
