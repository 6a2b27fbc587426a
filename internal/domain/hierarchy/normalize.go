package hierarchy

import "strings"

// Los códigos de la fuente traen espacios sueltos (datos cargados a mano);
// toda comparación de códigos se hace sobre el valor normalizado.

// NormalizeCode recorta espacios al inicio y final. Un código vacío
// normaliza a vacío y no participa en ningún match: una consulta con
// alcance vacío devuelve cero filas, nunca "todas las filas".
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}

// NormalizeRole recorta y pasa a minúsculas: los roles se comparan
// además case-insensitive.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// CodesEqual compara dos códigos bajo la igualdad normalizada.
func CodesEqual(a, b string) bool {
	return NormalizeCode(a) == NormalizeCode(b)
}
