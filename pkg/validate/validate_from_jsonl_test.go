package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Gunvolt24/shop_api/internal/domain"
)

func productJSON(id int64, name, price string) string {
	return `{"id":` + jsonInt(id) + `,"name":"` + name + `","description":"","price":"` + price + `","image_url":""}`
}

func jsonInt(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestValidateJSONLStream_Mixed(t *testing.T) {
	ctx := context.Background()
	validator := NewProductValidator()

	line1 := productJSON(1, "Gopher Tee", "19.99")
	line2 := productJSON(2, "", "22.50") // пустое имя — невалидно
	line3 := ""                          // пустая строка — ок
	line4 := productJSON(3, "Defer Tee", "21.00")

	input := strings.Join([]string{line1, line2, line3, line4}, "\n")
	var out bytes.Buffer

	res, err := ValidateJSONLStream(ctx, validator, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 2 || res.InvalidLinesCount != 1 {
		t.Fatalf("unexpected counters: %+v", res)
	}

	outLines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(outLines) != 2 {
		t.Fatalf("expected 2 output lines, got %d", len(outLines))
	}
	var p1, p2 domain.Product
	if err := json.Unmarshal([]byte(outLines[0]), &p1); err != nil {
		t.Fatalf("unmarshal line1: %v", err)
	}
	if err := json.Unmarshal([]byte(outLines[1]), &p2); err != nil {
		t.Fatalf("unmarshal line2: %v", err)
	}
	got := []int64{p1.ID, p2.ID}
	wantSet := map[int64]bool{1: true, 3: true}
	for _, id := range got {
		if !wantSet[id] {
			t.Fatalf("unexpected id in output: %d", id)
		}
	}
}

func TestValidateJSONLStream_LargeLine(t *testing.T) {
	ctx := context.Background()
	validator := NewProductValidator()

	bigDescription := strings.Repeat("X", 200_000) // > 64KB
	raw := `{"id":100,"name":"Big","description":"` + bigDescription + `","price":"1.00","image_url":""}`

	var out bytes.Buffer
	res, err := ValidateJSONLStream(ctx, validator, strings.NewReader(raw+"\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 1 || res.InvalidLinesCount != 0 {
		t.Fatalf("unexpected counters: %+v", res)
	}
	if strings.Count(strings.TrimSpace(out.String()), "\n")+1 != 1 {
		t.Fatalf("expected 1 output line")
	}
}

func TestValidateJSONLStream_UnknownFieldInvalid(t *testing.T) {
	ctx := context.Background()
	validator := NewProductValidator()

	raw := `{"id":1,"name":"Gopher Tee","price":"19.99","bogus":true}`

	var out bytes.Buffer
	res, err := ValidateJSONLStream(ctx, validator, strings.NewReader(raw+"\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 0 || res.InvalidLinesCount != 1 {
		t.Fatalf("unexpected counters: %+v", res)
	}
}
