package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/importer"
)

func TestReadItems_UTF8(t *testing.T) {
	in := "name,brand,type,quantity,store,in_stock\n" +
		"Plastic Chairs,Generic,Seating,500,boba,\n" +
		"LED Par Lights, Chauvet ,Lighting,30,MIKOCHENI,25\n" +
		",,,,\n"
	rows, err := importer.ReadItems(strings.NewReader(in), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Plastic Chairs", rows[0].Name)
	assert.Equal(t, "BOBA", rows[0].Store)
	assert.Nil(t, rows[0].InStock)
	assert.Equal(t, "Chauvet", rows[1].Brand)
	require.NotNil(t, rows[1].InStock)
	assert.Equal(t, 25, *rows[1].InStock)
}

func TestReadItems_Latin1(t *testing.T) {
	utf := "store,quantity,name,brand,type\nBOBA,4,Generador diésel,Honda,Power\n"
	enc, err := charmap.ISO8859_1.NewEncoder().String(utf)
	require.NoError(t, err)

	rows, err := importer.ReadItems(bytes.NewBufferString(enc), "ISO-8859-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Generador diésel", rows[0].Name)
	assert.Equal(t, 4, rows[0].Quantity)
}

func TestReadItems_Errores(t *testing.T) {
	_, err := importer.ReadItems(strings.NewReader("name,brand\nx,y\n"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = importer.ReadItems(strings.NewReader("name,brand,type,quantity,store\nChairs,G,S,muchos,BOBA\n"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = importer.ReadItems(strings.NewReader("name\n"), "ebcdic")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rows, err := importer.ReadItems(strings.NewReader(""), "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
