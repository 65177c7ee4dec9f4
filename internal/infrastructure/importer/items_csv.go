// Package importer lee el CSV de artículos (name,brand,type,quantity,store[,in_stock]).
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/domain"
)

// Charsets soportados.
const (
	CharsetUTF8   = "utf-8"
	CharsetLatin1 = "iso-8859-1"
)

var required = []string{"name", "brand", "type", "quantity", "store"}

// ReadItemsFile abre path y delega en ReadItems.
func ReadItemsFile(path, charset string) ([]dto.CreateItemRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("importer: abrir %s: %w", path, err)
	}
	defer f.Close()
	return ReadItems(f, charset)
}

// ReadItems decodifica el CSV. La primera fila es el encabezado; el orden de columnas es libre.
// Los errores indican la línea y envuelven domain.ErrInvalidInput.
func ReadItems(r io.Reader, charset string) ([]dto.CreateItemRequest, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", CharsetUTF8, "utf8":
	case CharsetLatin1, "iso8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, domain.Invalid("charset no soportado %q", charset)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("importer: encabezado: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, domain.Invalid("falta la columna %q", name)
		}
	}

	var out []dto.CreateItemRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: línea %d: %w", line, err)
		}
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if field("name") == "" && field("quantity") == "" {
			continue
		}
		qty, err := strconv.Atoi(field("quantity"))
		if err != nil {
			return nil, domain.Invalid("línea %d: quantity inválida %q", line, field("quantity"))
		}
		req := dto.CreateItemRequest{
			Name:     field("name"),
			Brand:    field("brand"),
			Type:     field("type"),
			Quantity: qty,
			Store:    strings.ToUpper(field("store")),
		}
		if s := field("in_stock"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, domain.Invalid("línea %d: in_stock inválido %q", line, s)
			}
			req.InStock = &n
		}
		out = append(out, req)
	}
	return out, nil
}
