package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Run("happy: direct property", func(t *testing.T) {
		rec := map[string]any{"amount": 10.5}
		assert.Equal(t, 10.5, Resolve(rec, "amount"))
	})

	t.Run("happy: alias property", func(t *testing.T) {
		rec := map[string]any{"montoTransaccion": 77.0}
		assert.Equal(t, 77.0, Resolve(rec, "amount"))

		rec = map[string]any{"pan": "4532123456789012"}
		assert.Equal(t, "4532123456789012", Resolve(rec, "cardNumber"))
	})

	t.Run("happy: serialized JSON container", func(t *testing.T) {
		rec := map[string]any{"datosExtras": `{"monto": 42.5}`}
		assert.Equal(t, 42.5, Resolve(rec, "amount"))
	})

	t.Run("happy: nested object container", func(t *testing.T) {
		rec := map[string]any{
			"metadata": map[string]any{
				"tarjeta": map[string]any{"numeroTarjeta": "5412751234123456"},
			},
		}
		assert.Equal(t, "5412751234123456", Resolve(rec, "cardNumber"))
	})

	t.Run("happy: deep recursive scan", func(t *testing.T) {
		rec := map[string]any{
			"algo": map[string]any{
				"masAdentro": map[string]any{"referencia": "Compra en línea"},
			},
		}
		assert.Equal(t, "Compra en línea", Resolve(rec, "reference"))
	})

	t.Run("bad: malformed container JSON is treated as absent", func(t *testing.T) {
		rec := map[string]any{"datosExtras": `{"monto": `}
		assert.Nil(t, Resolve(rec, "amount"))
	})

	t.Run("bad: missing everywhere", func(t *testing.T) {
		rec := map[string]any{"otra": "cosa"}
		assert.Nil(t, Resolve(rec, "amount"))
	})

	t.Run("bad: nil record", func(t *testing.T) {
		assert.Nil(t, Resolve(nil, "amount"))
	})

	t.Run("bad: explicit null does not shadow an alias", func(t *testing.T) {
		rec := map[string]any{"amount": nil, "valor": 3.0}
		assert.Equal(t, 3.0, Resolve(rec, "amount"))
	})

	t.Run("bad: nesting beyond the depth limit is abandoned", func(t *testing.T) {
		inner := map[string]any{"monto": 1.0}
		rec := inner
		for i := 0; i < maxDepth+2; i++ {
			rec = map[string]any{"nivel": rec}
		}
		assert.Nil(t, Resolve(rec, "amount"))
	})
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "abc", AsString("abc"))
	assert.Equal(t, "42.5", AsString(42.5))
	assert.Equal(t, "100", AsString(100.0), "whole floats render without decimals")
	assert.Equal(t, "true", AsString(true))
	assert.Equal(t, "", AsString(nil))
	assert.Equal(t, "", AsString(map[string]any{}))
}
