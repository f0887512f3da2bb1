package rules

import (
	"github.com/donaldgifford/stylefix/internal/rules/structural"
	"github.com/donaldgifford/stylefix/internal/rules/whitespace"
)

func init() {
	// Declarations first, so that later fixers see one variable per
	// statement and final renames.
	Register("MultipleVariableDeclarations", fixer(structural.NewMultipleVariableDeclarations))
	Register("HideUtilityClassConstructor", fixer(structural.NewHideUtilityClassConstructor))
	Register("CovariantEquals", fixer(structural.NewCovariantEquals))
	Register("HiddenField", fixer(structural.NewHiddenField))
	Register("StaticVariableName", fixer(structural.NewStaticVariableName))
	Register("FinalLocalVariable", fixer(structural.NewFinalLocalVariable))

	// Statements and expressions. Braces go in before any padding fixer
	// looks at the blocks they create.
	Register("EqualsAvoidsNull", fixer(structural.NewEqualsAvoidsNull))
	Register("NeedBraces", fixer(structural.NewNeedBraces))
	Register("EmptyBlock", fixer(structural.NewEmptyBlock))
	Register("SimplifyBooleanReturn", fixer(structural.NewSimplifyBooleanReturn))
	Register("UnnecessaryParentheses", fixer(structural.NewUnnecessaryParentheses))

	// Whitespace.
	Register("RightCurly", fixer(whitespace.NewRightCurly))
	Register("GenericWhitespace", fixer(whitespace.NewGenericWhitespace))
	Register("MethodParamPad", fixer(whitespace.NewMethodParamPad))
	Register("TypecastParenPad", fixer(whitespace.NewTypecastParenPad))
	Register("NoWhitespaceAfter", fixer(whitespace.NewNoWhitespaceAfter))
	Register("NoWhitespaceBefore", fixer(whitespace.NewNoWhitespaceBefore))
	Register("EmptyForInitializerPad", fixer(whitespace.NewEmptyForInitializerPad))
}
