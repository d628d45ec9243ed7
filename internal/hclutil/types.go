package hclutil

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// AnswerTypeToCty converts an HCL expression that represents an answer type
// keyword (e.g. the bare `string` identifier) into its corresponding cty.Type.
// Deck answers are scalar, so only the primitive keywords are accepted.
func AnswerTypeToCty(expr hcl.Expression) (cty.Type, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	// We expect a simple identifier like `string`, not a complex expression.
	// AbsTraversalForExpr is the right tool to validate this structure.
	traversal, hclDiags := hcl.AbsTraversalForExpr(expr)
	if hclDiags.HasErrors() || len(traversal) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid answer type",
			Detail:   "The 'answer_type' attribute must be a simple type keyword like 'string', 'number', or 'bool', not a complex expression.",
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}

	switch typeName := traversal.RootName(); typeName {
	case "string":
		return cty.String, diags
	case "number":
		return cty.Number, diags
	case "bool":
		return cty.Bool, diags
	default:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported answer type",
			Detail:   fmt.Sprintf("The keyword '%s' is not a valid answer type. Supported types are: string, number, bool.", typeName),
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}
}
