package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
products:
  - name: Volantes
dimensions:
  - label: 8.5x11
materials:
  - name: Couché 130g
    price: 40
    sheet_size: 20x30
charges:
  - name: Corte
    description: Corte de guillotina
`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPriceCommand(t *testing.T) {
	out, err := run(t, "", "price", "--size", "8.5x11", "--sheet", "20x30", "--price", "40", "--qty", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "Flyers per sheet")
	assert.Contains(t, out, "202")
	assert.Contains(t, out, "$28.36")
}

func TestPriceCommand_Charges(t *testing.T) {
	out, err := run(t, "", "price", "--size", "carta", "--sheet", "tabloide", "--price", "500",
		"--qty", "100", "--charge", "Corte=50", "--extra", "Envío=25", "--tiro", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "$85.00")
	assert.Contains(t, out, "$187.00")

	_, err = run(t, "", "price", "--size", "carta", "--sheet", "tabloide", "--qty", "1", "--charge", "Corte")
	assert.Error(t, err)

	_, err = run(t, "", "price", "--size", "carta", "--sheet", "tabloide")
	assert.Error(t, err)
}

func TestChatCommand_FullQuote(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte(testCatalog), 0o644))
	outDir := filepath.Join(dir, "quotes")

	input := strings.Join([]string{
		"hola", "Ana", "1", "1", "1", "1", "1000", "no", "0", "no", "1", "no", "no", "sí",
	}, "\n")
	out, err := run(t, input, "chat", "--catalog", catalog, "--out", outDir)
	require.NoError(t, err)

	assert.Contains(t, out, "¿Cuál es tu nombre?")
	assert.Contains(t, out, "1. Volantes")
	assert.Contains(t, out, "Resumen de tu cotización")
	assert.Contains(t, out, "ha sido generada")

	files, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0].Name(), "COT-"))

	pdf, err := os.ReadFile(filepath.Join(outDir, files[0].Name()))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestChatCommand_MissingCatalog(t *testing.T) {
	_, err := run(t, "hola\n", "chat", "--catalog", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
