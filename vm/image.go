package xovm

/*
	The loaded program image. The core consumes modules that have already
	been parsed into typed sections:

		- type table: (params_count, results_count) per entry
		- local variable list table: per-variable byte widths plus the
		  total allocated bytes (arguments + locals, one 8-byte slot each)
		- function table: (type_index, local_variable_list_index, code_offset)
		- function index table: function public index -> (module, internal index)
		- data sections: read-only, read-write, uninitialized; entries are
		  addressed by a public data index and a byte offset

	Code of all functions in a module lives in one contiguous byte area;
	instruction addresses are offsets into that area.
*/

// TypeEntry records the signature shape of a function or block.
type TypeEntry struct {
	ParamsCount  uint16
	ResultsCount uint16
}

// LocalVariable declares the byte width of one argument or local variable.
// Every variable occupies one 8-byte slot on the stack regardless of its
// declared width; narrower variables use the low bytes of their slot.
type LocalVariable struct {
	Width uint16
}

type LocalVariableList struct {
	Variables []LocalVariable

	// total bytes reserved for arguments + locals
	AllocateBytes uint32
}

// NewLocalVariableList builds a list entry from declared widths.
func NewLocalVariableList(widths ...uint16) LocalVariableList {
	vars := make([]LocalVariable, len(widths))
	for i, w := range widths {
		vars[i] = LocalVariable{Width: w}
	}
	return LocalVariableList{
		Variables:     vars,
		AllocateBytes: uint32(len(widths)) * OperandSizeInBytes,
	}
}

type FunctionEntry struct {
	TypeIndex              uint32
	LocalVariableListIndex uint32
	CodeOffset             uint32
}

// FunctionRef resolves a function public index to its implementation.
type FunctionRef struct {
	ModuleIndex           int
	FunctionInternalIndex int
}

type DataSectionKind int

const (
	DataSectionReadOnly DataSectionKind = iota
	DataSectionReadWrite
	DataSectionUninit
)

// DataItem is one entry within a data section, at a fixed address.
type DataItem struct {
	Offset uint32
	Length uint32
}

type DataSection struct {
	Data  []byte
	Items []DataItem
}

// DataRef resolves a data public index to a section entry.
type DataRef struct {
	Kind      DataSectionKind
	ItemIndex int
}

type Module struct {
	TypeTable          []TypeEntry
	LocalVariableLists []LocalVariableList
	Functions          []FunctionEntry
	CodeData           []byte

	// public index tables
	FunctionIndex []FunctionRef
	DataIndex     []DataRef

	ReadOnlyData  DataSection
	ReadWriteData DataSection
	UninitData    DataSection
}

func (m *Module) dataSection(kind DataSectionKind) *DataSection {
	switch kind {
	case DataSectionReadOnly:
		return &m.ReadOnlyData
	case DataSectionReadWrite:
		return &m.ReadWriteData
	default:
		return &m.UninitData
	}
}

// ModuleBuilder assembles a module image in memory. The file-format loader
// is an external collaborator; tests and the demo driver use this builder
// to produce the same typed sections the loader would.
type ModuleBuilder struct {
	module Module
}

func NewModuleBuilder() *ModuleBuilder {
	return &ModuleBuilder{}
}

// AddType appends a type entry and returns its index.
func (b *ModuleBuilder) AddType(paramsCount, resultsCount int) int {
	b.module.TypeTable = append(b.module.TypeTable, TypeEntry{
		ParamsCount:  uint16(paramsCount),
		ResultsCount: uint16(resultsCount),
	})
	return len(b.module.TypeTable) - 1
}

// AddLocalVariableList appends a local variable list and returns its index.
// The widths cover arguments first, then the declared locals.
func (b *ModuleBuilder) AddLocalVariableList(widths ...uint16) int {
	b.module.LocalVariableLists = append(b.module.LocalVariableLists, NewLocalVariableList(widths...))
	return len(b.module.LocalVariableLists) - 1
}

// AddFunction appends a function whose body is the given code, and registers
// it in the public function index table. Returns the function public index.
func (b *ModuleBuilder) AddFunction(typeIndex, localVariableListIndex int, code []byte) int {
	codeOffset := len(b.module.CodeData)
	b.module.CodeData = append(b.module.CodeData, code...)
	b.module.Functions = append(b.module.Functions, FunctionEntry{
		TypeIndex:              uint32(typeIndex),
		LocalVariableListIndex: uint32(localVariableListIndex),
		CodeOffset:             uint32(codeOffset),
	})
	internal := len(b.module.Functions) - 1
	b.module.FunctionIndex = append(b.module.FunctionIndex, FunctionRef{
		ModuleIndex:           0,
		FunctionInternalIndex: internal,
	})
	return len(b.module.FunctionIndex) - 1
}

// AddReadOnlyData appends an initialized read-only data entry and registers
// its public data index.
func (b *ModuleBuilder) AddReadOnlyData(data []byte) int {
	return b.addInitializedData(DataSectionReadOnly, data)
}

// AddReadWriteData appends an initialized read-write data entry and registers
// its public data index.
func (b *ModuleBuilder) AddReadWriteData(data []byte) int {
	return b.addInitializedData(DataSectionReadWrite, data)
}

// AddUninitData reserves a zeroed entry in the uninitialized section and
// registers its public data index.
func (b *ModuleBuilder) AddUninitData(length int) int {
	section := b.module.dataSection(DataSectionUninit)
	item := DataItem{Offset: uint32(len(section.Data)), Length: uint32(length)}
	section.Data = append(section.Data, make([]byte, length)...)
	section.Items = append(section.Items, item)

	b.module.DataIndex = append(b.module.DataIndex, DataRef{
		Kind:      DataSectionUninit,
		ItemIndex: len(section.Items) - 1,
	})
	return len(b.module.DataIndex) - 1
}

func (b *ModuleBuilder) addInitializedData(kind DataSectionKind, data []byte) int {
	section := b.module.dataSection(kind)
	item := DataItem{Offset: uint32(len(section.Data)), Length: uint32(len(data))}
	section.Data = append(section.Data, data...)
	section.Items = append(section.Items, item)

	b.module.DataIndex = append(b.module.DataIndex, DataRef{
		Kind:      kind,
		ItemIndex: len(section.Items) - 1,
	})
	return len(b.module.DataIndex) - 1
}

// Build returns the finished module image.
func (b *ModuleBuilder) Build() *Module {
	m := b.module
	return &m
}
