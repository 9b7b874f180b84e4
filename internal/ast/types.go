package ast

type NodeType int

const (
	ILLEGAL NodeType = iota
	FILE

	// Expressions
	NULL_LITERAL
	BOOLEAN_LITERAL
	NUMBER_LITERAL
	STRING_LITERAL
	IDENTIFIER
	ASSIGNMENT
	LIST_DISPLAY
	RECORD_DISPLAY
	FUNCTION_DISPLAY
	METHOD_CALL
	LOGICAL_NOT
	LOGICAL_AND
	LOGICAL_OR
	CONDITIONAL
	TYPE_ASSERTION
	NATIVE_EXPRESSION
	NATIVE_PURE_FUNCTION

	// Statements
	DECLARATION
	EXPRESSION_STATEMENT
	BLOCK
	IF
	WHILE
	FOR
	RETURN
	BREAK
	CONTINUE
	CLASS_DEFINITION
	INTERFACE_DEFINITION
	ENUM_DEFINITION
	TYPEDEF
	IMPORT_AS
	FROM_IMPORT
	EXPORT_AS

	// Type expressions
	TYPENAME
	SPECIAL_TYPE_DISPLAY
	NULLABLE_TYPE_DISPLAY
	UNION_TYPE_DISPLAY
	FUNCTION_TYPE_DISPLAY
	VALUE_TYPE_DISPLAY

	// Pieces that only appear inside other nodes
	PARAMETER
	TYPE_PARAMETER
	RECORD_ENTRY
	ENUM_MEMBER
	IMPORT_NAME
)

var nodeTypeNames = [...]string{
	ILLEGAL:               "ILLEGAL",
	FILE:                  "FILE",
	NULL_LITERAL:          "NULL_LITERAL",
	BOOLEAN_LITERAL:       "BOOLEAN_LITERAL",
	NUMBER_LITERAL:        "NUMBER_LITERAL",
	STRING_LITERAL:        "STRING_LITERAL",
	IDENTIFIER:            "IDENTIFIER",
	ASSIGNMENT:            "ASSIGNMENT",
	LIST_DISPLAY:          "LIST_DISPLAY",
	RECORD_DISPLAY:        "RECORD_DISPLAY",
	FUNCTION_DISPLAY:      "FUNCTION_DISPLAY",
	METHOD_CALL:           "METHOD_CALL",
	LOGICAL_NOT:           "LOGICAL_NOT",
	LOGICAL_AND:           "LOGICAL_AND",
	LOGICAL_OR:            "LOGICAL_OR",
	CONDITIONAL:           "CONDITIONAL",
	TYPE_ASSERTION:        "TYPE_ASSERTION",
	NATIVE_EXPRESSION:     "NATIVE_EXPRESSION",
	NATIVE_PURE_FUNCTION:  "NATIVE_PURE_FUNCTION",
	DECLARATION:           "DECLARATION",
	EXPRESSION_STATEMENT:  "EXPRESSION_STATEMENT",
	BLOCK:                 "BLOCK",
	IF:                    "IF",
	WHILE:                 "WHILE",
	FOR:                   "FOR",
	RETURN:                "RETURN",
	BREAK:                 "BREAK",
	CONTINUE:              "CONTINUE",
	CLASS_DEFINITION:      "CLASS_DEFINITION",
	INTERFACE_DEFINITION:  "INTERFACE_DEFINITION",
	ENUM_DEFINITION:       "ENUM_DEFINITION",
	TYPEDEF:               "TYPEDEF",
	IMPORT_AS:             "IMPORT_AS",
	FROM_IMPORT:           "FROM_IMPORT",
	EXPORT_AS:             "EXPORT_AS",
	TYPENAME:              "TYPENAME",
	SPECIAL_TYPE_DISPLAY:  "SPECIAL_TYPE_DISPLAY",
	NULLABLE_TYPE_DISPLAY: "NULLABLE_TYPE_DISPLAY",
	UNION_TYPE_DISPLAY:    "UNION_TYPE_DISPLAY",
	FUNCTION_TYPE_DISPLAY: "FUNCTION_TYPE_DISPLAY",
	VALUE_TYPE_DISPLAY:    "VALUE_TYPE_DISPLAY",
	PARAMETER:             "PARAMETER",
	TYPE_PARAMETER:        "TYPE_PARAMETER",
	RECORD_ENTRY:          "RECORD_ENTRY",
	ENUM_MEMBER:           "ENUM_MEMBER",
	IMPORT_NAME:           "IMPORT_NAME",
}

func (nt NodeType) String() string {
	if nt >= 0 && int(nt) < len(nodeTypeNames) {
		return nodeTypeNames[nt]
	}
	return "NodeType(?)"
}
