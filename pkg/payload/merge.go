package payload

// MergeMissing splices patch into dst without disturbing populated data:
// every field present in patch but absent or empty in dst is set, nested
// objects present on both sides are merged recursively, and any destination
// value that is non-empty survives untouched. The operation is idempotent:
// applying the same patch twice yields the same result as applying it once.
//
// When dst is empty (null, empty string, empty array, empty object) the
// patch replaces it wholesale. Non-object destinations that already hold
// data are returned unchanged regardless of the patch.
func MergeMissing(dst, patch Value) Value {
	if patch.IsNull() {
		return dst
	}
	if dst.IsEmpty() {
		return patch
	}
	if dst.Kind() != KindObject || patch.Kind() != KindObject {
		return dst
	}

	fields := make(map[string]Value, dst.Len())
	for _, k := range dst.Keys() {
		fields[k], _ = dst.Field(k)
	}

	for _, k := range patch.Keys() {
		pv, _ := patch.Field(k)
		dv, ok := fields[k]
		switch {
		case !ok || dv.IsEmpty():
			fields[k] = pv
		case dv.Kind() == KindObject && pv.Kind() == KindObject:
			fields[k] = MergeMissing(dv, pv)
		}
	}

	return Object(fields)
}
