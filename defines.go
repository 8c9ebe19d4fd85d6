package shape

// Names of the built-in constructors seeded into every registry
// created without ExcludeDefaults.
const (
	NumberName   = "number"
	StringName   = "string"
	BooleanName  = "boolean"
	CallableName = "callable"
	ChannelName  = "channel"
	IntegerName  = "integer"
	TableName    = "table"
	ListName     = "list"
	RangeName    = "range"
	InterName    = "inter"
	UnionName    = "union"
	OptionalName = "optional"
	AnyName      = "any"
	NoneName     = "none"
	StructName   = "struct"
	LiteralName  = "literal"
	UUIDName     = "uuid"
)

// Context frames prepended by the combinators when a nested validator fails.
const (
	TableKeyContext     = "in table key"
	TableValueContext   = "in table value"
	StructFieldContext  = "in struct field"
	IntersectionContext = "in intersection type"
	OptionalContext     = "in optional type"
)

// Leaf messages.
const (
	NotIntegerMessage     = "integer expected"
	NotAggregateMessage   = "table expected"
	NotEnoughMessage      = "not enough elements"
	TooManyMessage        = "too many elements"
	UnionExhaustedMessage = "none of the types in the union fits"
	EmptyTypeMessage      = "empty type"
	NegInfinity           = "-infinity"
	PosInfinity           = "+infinity"
)

// Struct tag keys read by FromTags.
const (
	ShapeTagKey = "shape"
	JSONTagKey  = "json"
)

