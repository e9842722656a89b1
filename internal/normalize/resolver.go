package normalize

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog/log"
)

// maxDepth bounds the recursive scan. Records come from encoding/json, so
// cycles are impossible, but deeply nested payloads stay cheap to reject.
const maxDepth = 8

// fieldAliases maps a logical field to the raw spellings the processor has
// been observed to use across revisions.
var fieldAliases = map[string][]string{
	"amount":     {"monto", "montoTransaccion", "amount", "valor", "total", "valorTransaccion"},
	"cardNumber": {"numeroTarjeta", "tarjeta", "cardNumber", "numeroTarj", "pan", "tarjetaNumero", "numeroTarjetaCredito"},
	"reference":  {"referencia", "referenciaTransaccion", "reference", "descripcion", "detalle", "referenciaComercial", "descripcionCompra"},
	"country":    {"pais", "paisOrigen", "paisComercio", "country", "origen", "paisTransaccion"},
	"brand":      {"marca", "marcaTarjeta", "franchise", "tipoTarjeta", "brand"},
	"createdAt":  {"fechaCreacion", "fechaTransaccion", "dateCreated", "created", "timestamp", "date", "fecha"},
}

// containerFields are properties known to hold nested objects or serialized
// JSON blobs that may carry the data the top level omits.
var containerFields = []string{
	"datosExtras", "informacion", "detalles", "metadata", "datos",
	"datosTarjeta", "datosTransaccion", "infoAdicional", "extras",
	"detallesTransaccion", "payload", "attributes", "response", "request",
}

// Resolve returns the best-available value for a logical field in a raw
// processor record, or nil. Search order: direct property, known aliases,
// container fields (decoding JSON strings, one nested level deep), then a
// depth-first scan of every object-typed property. Never panics; decode
// failures are logged and treated as absent.
func Resolve(record map[string]any, field string) any {
	return resolve(record, field, 0)
}

func resolve(record map[string]any, field string, depth int) any {
	if record == nil || depth > maxDepth {
		return nil
	}

	if v := lookup(record, field); v != nil {
		return v
	}

	for _, container := range containerFields {
		raw, ok := record[container]
		if !ok || raw == nil {
			continue
		}

		data := asObject(container, raw)
		if data == nil {
			continue
		}

		if v := lookup(data, field); v != nil {
			return v
		}
		for _, nested := range data {
			if obj, ok := nested.(map[string]any); ok {
				if v := lookup(obj, field); v != nil {
					return v
				}
			}
		}
	}

	for _, v := range record {
		if obj, ok := v.(map[string]any); ok {
			if found := resolve(obj, field, depth+1); found != nil {
				return found
			}
		}
	}

	return nil
}

// lookup checks the field itself and then its aliases at a single level.
func lookup(obj map[string]any, field string) any {
	if v, ok := obj[field]; ok && v != nil {
		return v
	}
	for _, alias := range fieldAliases[field] {
		if v, ok := obj[alias]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asObject(name string, v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case string:
		var decoded map[string]any
		if err := json.Unmarshal([]byte(t), &decoded); err != nil {
			log.Debug().Str("field", name).Err(err).Msg("container field is not valid JSON")
			return nil
		}
		return decoded
	default:
		return nil
	}
}

// ResolveString resolves a field and flattens it to a string, or "".
func ResolveString(record map[string]any, field string) string {
	return AsString(Resolve(record, field))
}

// AsString renders scalar JSON values as strings without trailing zeros on
// whole numbers. Non-scalars yield "".
func AsString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
