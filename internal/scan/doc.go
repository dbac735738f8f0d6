// Package scan is the declaration scanner: it inspects CUE type
// declarations and extracts the field and case shapes the planner consumes.
//
// The scanner owns every structural exclusion the core relies on: computed
// fields, static fields, and immutable fields that already carry a default
// value never reach a FieldDescriptor. The core never introspects
// declarations itself.
//
// Declaration format:
//
//	types: {
//		User: {
//			fields: {
//				id:     "String"
//				name:   {type: "String"}
//				avatar: {type: "URL", computed: true} // excluded
//			}
//		}
//		Status: {
//			enum: true
//			enumerable: false
//			cases: ["Active", {name: "Inactive", associated: true}]
//		}
//	}
//
// Field and case entries accept both the string shorthand and the object
// form.
package scan
