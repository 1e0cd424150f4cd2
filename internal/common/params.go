package common

// WildcardValue is the sentinel the client sends for "no preference" filters.
const WildcardValue = "any"

// CleanParams strips entries a search filter should not forward: empty
// strings, the "any" wildcard, nils, and slices with no non-nil element.
// Everything else passes through untouched.
func CleanParams(params map[string]interface{}) map[string]interface{} {
	cleaned := make(map[string]interface{}, len(params))
	for key, value := range params {
		if value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if v == "" || v == WildcardValue {
				continue
			}
		case []string:
			if !anyNonEmpty(v) {
				continue
			}
		case []interface{}:
			if !anyNonNil(v) {
				continue
			}
		}
		cleaned[key] = value
	}
	return cleaned
}

func anyNonEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return true
		}
	}
	return false
}

func anyNonNil(values []interface{}) bool {
	for _, v := range values {
		if v != nil {
			return true
		}
	}
	return false
}
