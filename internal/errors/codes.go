package errors

import "strings"

// Error codes for YAL diagnostics.
//
// Error code ranges:
// E0001-E0099: Name resolution errors
// E0100-E0199: Syntax errors
// E0200-E0299: Lexical errors
// E0300-E0399: Type errors
// E0400-E0499: Declaration and interface errors
// E0500-E0599: Import/module errors
// E0600-E0699: Flow control errors
// W0600-W0699: Flow control warnings

const (
	// E0001: Variable resolution errors
	ErrorUndefinedVariable = "E0001"

	// E0002: A type expression names nothing
	ErrorUndefinedType = "E0002"

	// E0003: Method or attribute lookup failed
	ErrorUndefinedMember = "E0003"

	// E0004: A value is used where a type is expected
	ErrorNotAType = "E0004"

	// E0005: `this` outside of a class body
	ErrorThisOutsideClass = "E0005"

	// E0100: Expectation mismatch while parsing
	ErrorSyntax = "E0100"

	// E0200: Unrecognised characters
	ErrorUnexpectedCharacter = "E0200"

	// E0201: String or block comment runs off the end
	ErrorUnterminated = "E0201"

	// E0300: Type compatibility errors
	ErrorTypeMismatch = "E0300"

	// E0301: Call arity errors
	ErrorInvalidArguments = "E0301"

	// E0302: Calling something without __call__
	ErrorNotCallable = "E0302"

	// E0303: `for` over something without an item type
	ErrorNotIterable = "E0303"

	// E0304: Wrong number or kind of type arguments
	ErrorInvalidTypeArguments = "E0304"

	// E0305: Method call on a possibly null receiver
	ErrorNullableReceiver = "E0305"

	// E0306: Returned value does not match the declared return type
	ErrorInvalidReturnType = "E0306"

	// E0400: Duplicate declaration errors
	ErrorDuplicateDeclaration = "E0400"

	// E0401: Assignment to an immutable binding
	ErrorAssignToConstant = "E0401"

	// E0402: A class does not implement an interface it claims
	ErrorMissingInterfaceMember = "E0402"

	// E0403: Constructing an abstract class
	ErrorAbstractInstantiation = "E0403"

	// E0404: `extends` names something that cannot be extended
	ErrorInvalidBase = "E0404"

	// E0405: return outside a function
	ErrorReturnOutsideFunction = "E0405"

	// E0406: break or continue outside a loop
	ErrorJumpOutsideLoop = "E0406"

	// E0407: A function without a body outside an abstract class or interface
	ErrorMissingBody = "E0407"

	// E0408: A type definition that refers back to itself
	ErrorCyclicType = "E0408"

	// E0500: Import path resolves to nothing
	ErrorModuleNotFound = "E0500"

	// E0501: from-import of a name the module does not have
	ErrorNotExported = "E0501"

	// E0502: export of an undeclared name
	ErrorInvalidExport = "E0502"

	// E0600: Missing return statement
	ErrorMissingReturn = "E0600"

	// W0601: Unreachable code warning
	WarningUnreachableCode = "W0601"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUndefinedVariable:
		return "Variable is used but not defined in the current scope"
	case ErrorUndefinedType:
		return "Type name does not refer to a known type"
	case ErrorUndefinedMember:
		return "Type has no method or attribute with this name"
	case ErrorNotAType:
		return "Value used where a type is expected"
	case ErrorThisOutsideClass:
		return "'this' used outside of a class"
	case ErrorSyntax:
		return "Source does not match the grammar"
	case ErrorUnexpectedCharacter:
		return "Character does not start any token"
	case ErrorUnterminated:
		return "String or comment is not closed"
	case ErrorTypeMismatch:
		return "Expression type does not match expected type"
	case ErrorInvalidArguments:
		return "Call has the wrong number of arguments"
	case ErrorNotCallable:
		return "Expression cannot be called"
	case ErrorNotIterable:
		return "Expression cannot be iterated over"
	case ErrorInvalidTypeArguments:
		return "Type arguments do not fit the generic type"
	case ErrorNullableReceiver:
		return "Method called on a value that may be null"
	case ErrorInvalidReturnType:
		return "Function return value type does not match declared return type"
	case ErrorDuplicateDeclaration:
		return "Duplicate declaration found"
	case ErrorAssignToConstant:
		return "Assignment to a constant"
	case ErrorMissingInterfaceMember:
		return "Class does not implement a required interface member"
	case ErrorAbstractInstantiation:
		return "Abstract class cannot be constructed"
	case ErrorInvalidBase:
		return "Base type cannot be extended"
	case ErrorReturnOutsideFunction:
		return "Return statement outside of a function"
	case ErrorJumpOutsideLoop:
		return "Break or continue outside of a loop"
	case ErrorMissingBody:
		return "Function has no body and is not abstract"
	case ErrorCyclicType:
		return "Type is defined in terms of itself"
	case ErrorModuleNotFound:
		return "Imported module cannot be found"
	case ErrorNotExported:
		return "Module has no member with this name"
	case ErrorInvalidExport:
		return "Exported name is not declared"
	case ErrorMissingReturn:
		return "Function declares return type but can finish without returning"
	case WarningUnreachableCode:
		return "Code is unreachable"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return strings.HasPrefix(code, "W")
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	if len(code) != 5 {
		return "Unknown"
	}
	if code[0] == 'W' {
		return "Warning"
	}
	switch code[:3] {
	case "E00":
		return "Name Resolution"
	case "E01":
		return "Syntax"
	case "E02":
		return "Lexical"
	case "E03":
		return "Type"
	case "E04":
		return "Declaration"
	case "E05":
		return "Import/Module"
	case "E06":
		return "Flow Control"
	default:
		return "Unknown"
	}
}
