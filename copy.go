package previewkit

// With returns a modified copy of v. The mutation runs against a copy, so
// the original value is never touched.
//
//	wide := With(img, func(i *Image) { i.Width = 1920 })
func With[T any](v T, mutate func(*T)) T {
	mutate(&v)
	return v
}

// Updated returns a copy of v with the field selected by sel replaced by
// val. The selector receives a pointer to the copy and must return a
// pointer to one of its fields.
//
//	renamed := Updated(user, func(u *User) *string { return &u.Name }, "ada")
func Updated[T any, F any](v T, sel func(*T) *F, val F) T {
	*sel(&v) = val
	return v
}
