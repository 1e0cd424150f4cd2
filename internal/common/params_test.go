package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanParams(t *testing.T) {
	params := map[string]interface{}{
		"location":  "",
		"beds":      "any",
		"priceMin":  500,
		"amenities": []string{},
	}

	cleaned := CleanParams(params)

	assert.Len(t, cleaned, 1)
	assert.Equal(t, 500, cleaned["priceMin"])
}

func TestCleanParams_KeepsMeaningfulValues(t *testing.T) {
	params := map[string]interface{}{
		"city":      "Austin",
		"priceMax":  "1500",
		"amenities": []string{"Pool", "Gym"},
		"baths":     2,
	}

	cleaned := CleanParams(params)

	assert.Len(t, cleaned, 4)
	assert.Equal(t, "Austin", cleaned["city"])
	assert.Equal(t, []string{"Pool", "Gym"}, cleaned["amenities"])
}

func TestCleanParams_DropsNilAndAllNilSlices(t *testing.T) {
	params := map[string]interface{}{
		"state":     nil,
		"amenities": []interface{}{nil, nil},
		"beds":      "3",
	}

	cleaned := CleanParams(params)

	assert.Len(t, cleaned, 1)
	assert.Equal(t, "3", cleaned["beds"])
}

func TestCleanParams_SliceWithSomeEmptyEntriesSurvives(t *testing.T) {
	params := map[string]interface{}{
		"amenities": []string{"", "Parking"},
	}

	cleaned := CleanParams(params)

	assert.Contains(t, cleaned, "amenities")
}
