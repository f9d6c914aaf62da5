package ast

import "fmt"

// Kind tags the syntactic shape of a Node, in the "big enum + String()
// lookup table" style the teacher's kind.go uses throughout.
type Kind int

const (
	KindTranslationUnit Kind = iota

	// Expressions
	KindIntLiteral
	KindFloatLiteral
	KindStringLiteral
	KindWideStringLiteral
	KindIdentExpr
	KindParenExpr
	KindUnaryExpr
	KindPostfixExpr
	KindSizeofExpr
	KindAlignofExpr
	KindExtensionExpr
	KindClassifyTypeExpr
	KindCastExpr
	KindBinaryExpr
	KindLogicalExpr
	KindConditionalExpr
	KindAssignExpr
	KindCommaExpr
	KindIndexExpr
	KindCallExpr
	KindMemberExpr
	KindCompoundLiteralExpr
	KindStatementExpr

	// Statements
	KindLabelStatement
	KindCaseStatement
	KindDefaultStatement
	KindCompoundStatement
	KindExpressionStatement
	KindEmptyStatement
	KindIfStatement
	KindSwitchStatement
	KindWhileStatement
	KindDoWhileStatement
	KindForStatement
	KindGotoStatement
	KindContinueStatement
	KindBreakStatement
	KindReturnStatement
	KindAsmStatement
	KindDeclarationStatement

	// Declarators / declarations
	KindDeclarator
	KindParameter
	KindInitDeclarator
	KindFunctionDefinition

	// Initializers / designators
	KindExprInitializer
	KindListInitializer
	KindInitializerElement
	KindIndexDesignator
	KindFieldDesignator
)

var kindNames = map[Kind]string{
	KindTranslationUnit: "TranslationUnit",

	KindIntLiteral:          "IntLiteral",
	KindFloatLiteral:        "FloatLiteral",
	KindStringLiteral:       "StringLiteral",
	KindWideStringLiteral:   "WideStringLiteral",
	KindIdentExpr:           "IdentExpr",
	KindParenExpr:           "ParenExpr",
	KindUnaryExpr:           "UnaryExpr",
	KindPostfixExpr:         "PostfixExpr",
	KindSizeofExpr:          "SizeofExpr",
	KindAlignofExpr:         "AlignofExpr",
	KindExtensionExpr:       "ExtensionExpr",
	KindClassifyTypeExpr:    "ClassifyTypeExpr",
	KindCastExpr:            "CastExpr",
	KindBinaryExpr:          "BinaryExpr",
	KindLogicalExpr:         "LogicalExpr",
	KindConditionalExpr:     "ConditionalExpr",
	KindAssignExpr:          "AssignExpr",
	KindCommaExpr:           "CommaExpr",
	KindIndexExpr:           "IndexExpr",
	KindCallExpr:            "CallExpr",
	KindMemberExpr:          "MemberExpr",
	KindCompoundLiteralExpr: "CompoundLiteralExpr",
	KindStatementExpr:       "StatementExpr",

	KindLabelStatement:       "LabelStatement",
	KindCaseStatement:        "CaseStatement",
	KindDefaultStatement:     "DefaultStatement",
	KindCompoundStatement:    "CompoundStatement",
	KindExpressionStatement:  "ExpressionStatement",
	KindEmptyStatement:       "EmptyStatement",
	KindIfStatement:          "IfStatement",
	KindSwitchStatement:      "SwitchStatement",
	KindWhileStatement:       "WhileStatement",
	KindDoWhileStatement:     "DoWhileStatement",
	KindForStatement:         "ForStatement",
	KindGotoStatement:        "GotoStatement",
	KindContinueStatement:    "ContinueStatement",
	KindBreakStatement:       "BreakStatement",
	KindReturnStatement:      "ReturnStatement",
	KindAsmStatement:         "AsmStatement",
	KindDeclarationStatement: "DeclarationStatement",

	KindDeclarator:          "Declarator",
	KindParameter:           "Parameter",
	KindInitDeclarator:      "InitDeclarator",
	KindFunctionDefinition:  "FunctionDefinition",

	KindExprInitializer:    "ExprInitializer",
	KindListInitializer:    "ListInitializer",
	KindInitializerElement: "InitializerElement",
	KindIndexDesignator:    "IndexDesignator",
	KindFieldDesignator:    "FieldDesignator",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
