package swagger

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestReadDoc_RenameProductDescribesBody(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]struct {
			Description string `json:"description"`
		} `json:"paths"`
	}
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}

	for _, tc := range []struct{ path, method string }{
		{"/products/edit", "patch"},
		{"/products/tests", "post"},
	} {
		op, ok := doc.Paths[tc.path][tc.method]
		if !ok {
			t.Fatalf("%s %s missing from doc", tc.method, tc.path)
		}
		for _, field := range []string{"productId", "title"} {
			if !strings.Contains(op.Description, field) {
				t.Errorf("%s %s description %q does not mention %s", tc.method, tc.path, op.Description, field)
			}
		}
	}
}
