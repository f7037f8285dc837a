package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/reaandrew/cloudauditor/core"
)

// toFinding rewrites decoded attributes into values encoding/json can marshal.
func toFinding(item map[string]interface{}) core.Finding {
	return core.Finding(normalizeValue(item).(map[string]interface{}))
}

// normalizeValue stringifies non-string map keys (YAML allows them, JSON does
// not) and turns DynamoDB numbers into json.Number so large integers keep
// their exact digits.
func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, item := range v {
			v[key] = normalizeValue(item)
		}
		return v
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for key, item := range v {
			m[fmt.Sprint(key)] = normalizeValue(item)
		}
		return m
	case []interface{}:
		for i, item := range v {
			v[i] = normalizeValue(item)
		}
		return v
	case attributevalue.Number:
		return json.Number(v)
	case []attributevalue.Number:
		numbers := make([]interface{}, len(v))
		for i, n := range v {
			numbers[i] = json.Number(n)
		}
		return numbers
	}
	return value
}
