package xovm

/*
	Instruction set layout:
			- little endian
			- variable-length instructions, the first 2 bytes are always the opcode
			- opcodes are 16-bit values grouped into categories by the high byte
			- instructions that carry an i32 parameter are 4-byte aligned, the
			  assembler inserts a leading `nop` where necessary

	Parameter forms (everything after the 2-byte opcode):
			no param            2 bytes  ()
			one i16             4 bytes  [param:i16]
			one i32             8 bytes  [pad:i16][param:i32]
			i16 + i32           8 bytes  [param0:i16][param1:i32]
			three i16           8 bytes  [p0:i16][p1:i16][p2:i16]
			i32 + i32          12 bytes  [pad:i16][p0:i32][p1:i32]
			i32 + i32 + i32    16 bytes  [pad:i16][p0:i32][p1:i32][p2:i32]

	Categories (by base value):
			0x0100 fundamental (nop, immediate numbers)
			0x0180 local variable load/store
			0x01c0 data section load/store
			0x0200 heap load/store
			0x0240 heap management
			0x0280 conversion
			0x02c0 comparison
			0x0300 arithmetic
			0x0340 bitwise
			0x0380 math
			0x03c0 control flow
			0x0400 function call
			0x0440 host interop
*/

type Opcode uint16

// The opcode space is bounded; the handler table is indexed directly
// by the opcode value.
const MaxOpcodeNumber = 0x480

const (
	Nop Opcode = 0x0100

	// the i32 immediate is sign-extended to i64. imm_i64/imm_f32/imm_f64
	// carry their full bit patterns in i32 parameter slots since no
	// instruction form has i64 parameters.
	ImmI32 Opcode = 0x0140
	ImmI64 Opcode = 0x0141
	ImmF32 Opcode = 0x0142
	ImmF64 Opcode = 0x0143

	// local variable access
	// (param reversed_index:i16 offset_bytes:i16 local_variable_index:i16)
	LocalLoadI64 Opcode = 0x0180
	LocalLoadI32S Opcode = 0x0181
	LocalLoadI32U Opcode = 0x0182
	LocalLoadI16S Opcode = 0x0183
	LocalLoadI16U Opcode = 0x0184
	LocalLoadI8S Opcode = 0x0185
	LocalLoadI8U Opcode = 0x0186
	LocalLoadF64 Opcode = 0x0187
	LocalLoadF32 Opcode = 0x0188
	LocalStoreI64 Opcode = 0x0189
	LocalStoreI32 Opcode = 0x018a
	LocalStoreI16 Opcode = 0x018b
	LocalStoreI8 Opcode = 0x018c
	LocalStoreF64 Opcode = 0x018d
	LocalStoreF32 Opcode = 0x018e

	// the "extend" variants take the byte offset as an operand
	// instead of an instruction parameter.
	// (param reversed_index:i16 local_variable_index:i32) (operand offset_bytes:i64)
	LocalLoadExtendI64 Opcode = 0x018f
	LocalLoadExtendI32S Opcode = 0x0190
	LocalLoadExtendI32U Opcode = 0x0191
	LocalLoadExtendI16S Opcode = 0x0192
	LocalLoadExtendI16U Opcode = 0x0193
	LocalLoadExtendI8S Opcode = 0x0194
	LocalLoadExtendI8U Opcode = 0x0195
	LocalLoadExtendF64 Opcode = 0x0196
	LocalLoadExtendF32 Opcode = 0x0197
	LocalStoreExtendI64 Opcode = 0x0198
	LocalStoreExtendI32 Opcode = 0x0199
	LocalStoreExtendI16 Opcode = 0x019a
	LocalStoreExtendI8 Opcode = 0x019b
	LocalStoreExtendF64 Opcode = 0x019c
	LocalStoreExtendF32 Opcode = 0x019d

	// data section access
	// (param offset_bytes:i16 data_public_index:i32)
	DataLoadI64 Opcode = 0x01c0
	DataLoadI32S Opcode = 0x01c1
	DataLoadI32U Opcode = 0x01c2
	DataLoadI16S Opcode = 0x01c3
	DataLoadI16U Opcode = 0x01c4
	DataLoadI8S Opcode = 0x01c5
	DataLoadI8U Opcode = 0x01c6
	DataLoadF64 Opcode = 0x01c7
	DataLoadF32 Opcode = 0x01c8
	DataStoreI64 Opcode = 0x01c9
	DataStoreI32 Opcode = 0x01ca
	DataStoreI16 Opcode = 0x01cb
	DataStoreI8 Opcode = 0x01cc
	DataStoreF64 Opcode = 0x01cd
	DataStoreF32 Opcode = 0x01ce

	// (param data_public_index:i32) (operand offset_bytes:i64)
	DataLoadExtendI64 Opcode = 0x01cf
	DataLoadExtendI32S Opcode = 0x01d0
	DataLoadExtendI32U Opcode = 0x01d1
	DataLoadExtendI16S Opcode = 0x01d2
	DataLoadExtendI16U Opcode = 0x01d3
	DataLoadExtendI8S Opcode = 0x01d4
	DataLoadExtendI8U Opcode = 0x01d5
	DataLoadExtendF64 Opcode = 0x01d6
	DataLoadExtendF32 Opcode = 0x01d7
	DataStoreExtendI64 Opcode = 0x01d8
	DataStoreExtendI32 Opcode = 0x01d9
	DataStoreExtendI16 Opcode = 0x01da
	DataStoreExtendI8 Opcode = 0x01db
	DataStoreExtendF64 Opcode = 0x01dc
	DataStoreExtendF32 Opcode = 0x01dd

	// heap access
	// (param offset_bytes:i16) (operand heap_addr:i64)
	HeapLoadI64 Opcode = 0x0200
	HeapLoadI32S Opcode = 0x0201
	HeapLoadI32U Opcode = 0x0202
	HeapLoadI16S Opcode = 0x0203
	HeapLoadI16U Opcode = 0x0204
	HeapLoadI8S Opcode = 0x0205
	HeapLoadI8U Opcode = 0x0206
	HeapLoadF64 Opcode = 0x0207
	HeapLoadF32 Opcode = 0x0208
	HeapStoreI64 Opcode = 0x0209
	HeapStoreI32 Opcode = 0x020a
	HeapStoreI16 Opcode = 0x020b
	HeapStoreI8 Opcode = 0x020c
	HeapStoreF64 Opcode = 0x020d
	HeapStoreF32 Opcode = 0x020e

	// heap management
	HeapFill Opcode = 0x0240
	HeapCopy Opcode = 0x0241
	HeapCapacity Opcode = 0x0242
	HeapResize Opcode = 0x0243

	// conversion
	TruncateI64ToI32 Opcode = 0x0280
	ExtendI32SToI64 Opcode = 0x0281
	ExtendI32UToI64 Opcode = 0x0282
	DemoteF64ToF32 Opcode = 0x0283
	PromoteF32ToF64 Opcode = 0x0284
	ConvertF32ToI32S Opcode = 0x0285
	ConvertF32ToI32U Opcode = 0x0286
	ConvertF64ToI32S Opcode = 0x0287
	ConvertF64ToI32U Opcode = 0x0288
	ConvertF32ToI64S Opcode = 0x0289
	ConvertF32ToI64U Opcode = 0x028a
	ConvertF64ToI64S Opcode = 0x028b
	ConvertF64ToI64U Opcode = 0x028c
	ConvertI32SToF32 Opcode = 0x028d
	ConvertI32UToF32 Opcode = 0x028e
	ConvertI64SToF32 Opcode = 0x028f
	ConvertI64UToF32 Opcode = 0x0290
	ConvertI32SToF64 Opcode = 0x0291
	ConvertI32UToF64 Opcode = 0x0292
	ConvertI64SToF64 Opcode = 0x0293
	ConvertI64UToF64 Opcode = 0x0294

	// comparison, the result is always 0 or 1 as i64
	EqzI32 Opcode = 0x02c0
	NezI32 Opcode = 0x02c1
	EqI32 Opcode = 0x02c2
	NeI32 Opcode = 0x02c3
	LtI32S Opcode = 0x02c4
	LtI32U Opcode = 0x02c5
	GtI32S Opcode = 0x02c6
	GtI32U Opcode = 0x02c7
	LeI32S Opcode = 0x02c8
	LeI32U Opcode = 0x02c9
	GeI32S Opcode = 0x02ca
	GeI32U Opcode = 0x02cb
	EqzI64 Opcode = 0x02cc
	NezI64 Opcode = 0x02cd
	EqI64 Opcode = 0x02ce
	NeI64 Opcode = 0x02cf
	LtI64S Opcode = 0x02d0
	LtI64U Opcode = 0x02d1
	GtI64S Opcode = 0x02d2
	GtI64U Opcode = 0x02d3
	LeI64S Opcode = 0x02d4
	LeI64U Opcode = 0x02d5
	GeI64S Opcode = 0x02d6
	GeI64U Opcode = 0x02d7
	EqF32 Opcode = 0x02d8
	NeF32 Opcode = 0x02d9
	LtF32 Opcode = 0x02da
	GtF32 Opcode = 0x02db
	LeF32 Opcode = 0x02dc
	GeF32 Opcode = 0x02dd
	EqF64 Opcode = 0x02de
	NeF64 Opcode = 0x02df
	LtF64 Opcode = 0x02e0
	GtF64 Opcode = 0x02e1
	LeF64 Opcode = 0x02e2
	GeF64 Opcode = 0x02e3

	// arithmetic, integer ops wrap on overflow
	AddI32 Opcode = 0x0300
	SubI32 Opcode = 0x0301
	AddImmI32 Opcode = 0x0302
	SubImmI32 Opcode = 0x0303
	MulI32 Opcode = 0x0304
	DivI32S Opcode = 0x0305
	DivI32U Opcode = 0x0306
	RemI32S Opcode = 0x0307
	RemI32U Opcode = 0x0308
	AddI64 Opcode = 0x0309
	SubI64 Opcode = 0x030a
	AddImmI64 Opcode = 0x030b
	SubImmI64 Opcode = 0x030c
	MulI64 Opcode = 0x030d
	DivI64S Opcode = 0x030e
	DivI64U Opcode = 0x030f
	RemI64S Opcode = 0x0310
	RemI64U Opcode = 0x0311
	AddF32 Opcode = 0x0312
	SubF32 Opcode = 0x0313
	MulF32 Opcode = 0x0314
	DivF32 Opcode = 0x0315
	AddF64 Opcode = 0x0316
	SubF64 Opcode = 0x0317
	MulF64 Opcode = 0x0318
	DivF64 Opcode = 0x0319

	// bitwise, shift/rotate counts are masked to the operand width
	And Opcode = 0x0340
	Or Opcode = 0x0341
	Xor Opcode = 0x0342
	Not Opcode = 0x0343
	ShiftLeftI32 Opcode = 0x0344
	ShiftRightI32S Opcode = 0x0345
	ShiftRightI32U Opcode = 0x0346
	RotateLeftI32 Opcode = 0x0347
	RotateRightI32 Opcode = 0x0348
	CountLeadingZerosI32 Opcode = 0x0349
	CountLeadingOnesI32 Opcode = 0x034a
	CountTrailingZerosI32 Opcode = 0x034b
	CountOnesI32 Opcode = 0x034c
	ShiftLeftI64 Opcode = 0x034d
	ShiftRightI64S Opcode = 0x034e
	ShiftRightI64U Opcode = 0x034f
	RotateLeftI64 Opcode = 0x0350
	RotateRightI64 Opcode = 0x0351
	CountLeadingZerosI64 Opcode = 0x0352
	CountLeadingOnesI64 Opcode = 0x0353
	CountTrailingZerosI64 Opcode = 0x0354
	CountOnesI64 Opcode = 0x0355

	// math
	AbsI32 Opcode = 0x0380
	NegI32 Opcode = 0x0381
	AbsI64 Opcode = 0x0382
	NegI64 Opcode = 0x0383
	AbsF32 Opcode = 0x0384
	NegF32 Opcode = 0x0385
	CopysignF32 Opcode = 0x0386
	SqrtF32 Opcode = 0x0387
	MinF32 Opcode = 0x0388
	MaxF32 Opcode = 0x0389
	CeilF32 Opcode = 0x038a
	FloorF32 Opcode = 0x038b
	RoundHalfAwayFromZeroF32 Opcode = 0x038c
	RoundHalfToEvenF32 Opcode = 0x038d
	TruncF32 Opcode = 0x038e
	FractF32 Opcode = 0x038f
	CbrtF32 Opcode = 0x0390
	ExpF32 Opcode = 0x0391
	Exp2F32 Opcode = 0x0392
	LnF32 Opcode = 0x0393
	Log2F32 Opcode = 0x0394
	Log10F32 Opcode = 0x0395
	SinF32 Opcode = 0x0396
	CosF32 Opcode = 0x0397
	TanF32 Opcode = 0x0398
	AsinF32 Opcode = 0x0399
	AcosF32 Opcode = 0x039a
	AtanF32 Opcode = 0x039b
	PowF32 Opcode = 0x039c
	LogF32 Opcode = 0x039d
	AbsF64 Opcode = 0x039e
	NegF64 Opcode = 0x039f
	CopysignF64 Opcode = 0x03a0
	SqrtF64 Opcode = 0x03a1
	MinF64 Opcode = 0x03a2
	MaxF64 Opcode = 0x03a3
	CeilF64 Opcode = 0x03a4
	FloorF64 Opcode = 0x03a5
	RoundHalfAwayFromZeroF64 Opcode = 0x03a6
	RoundHalfToEvenF64 Opcode = 0x03a7
	TruncF64 Opcode = 0x03a8
	FractF64 Opcode = 0x03a9
	CbrtF64 Opcode = 0x03aa
	ExpF64 Opcode = 0x03ab
	Exp2F64 Opcode = 0x03ac
	LnF64 Opcode = 0x03ad
	Log2F64 Opcode = 0x03ae
	Log10F64 Opcode = 0x03af
	SinF64 Opcode = 0x03b0
	CosF64 Opcode = 0x03b1
	TanF64 Opcode = 0x03b2
	AsinF64 Opcode = 0x03b3
	AcosF64 Opcode = 0x03b4
	AtanF64 Opcode = 0x03b5
	PowF64 Opcode = 0x03b6
	LogF64 Opcode = 0x03b7

	// control flow
	End Opcode = 0x03c0
	Block Opcode = 0x03c1
	Break Opcode = 0x03c2
	Recur Opcode = 0x03c3
	BlockAlt Opcode = 0x03c4
	BreakAlt Opcode = 0x03c5
	BlockNez Opcode = 0x03c6

	// function call
	Call Opcode = 0x0400
	Dyncall Opcode = 0x0401
	Extcall Opcode = 0x0404

	// host interop
	Panic Opcode = 0x0440
)

var opcodeNames = map[Opcode]string{
	Nop:    "nop",
	ImmI32: "imm_i32",
	ImmI64: "imm_i64",
	ImmF32: "imm_f32",
	ImmF64: "imm_f64",

	LocalLoadI64:  "local_load_i64",
	LocalLoadI32S: "local_load_i32_s",
	LocalLoadI32U: "local_load_i32_u",
	LocalLoadI16S: "local_load_i16_s",
	LocalLoadI16U: "local_load_i16_u",
	LocalLoadI8S:  "local_load_i8_s",
	LocalLoadI8U:  "local_load_i8_u",
	LocalLoadF64:  "local_load_f64",
	LocalLoadF32:  "local_load_f32",
	LocalStoreI64: "local_store_i64",
	LocalStoreI32: "local_store_i32",
	LocalStoreI16: "local_store_i16",
	LocalStoreI8:  "local_store_i8",
	LocalStoreF64: "local_store_f64",
	LocalStoreF32: "local_store_f32",

	LocalLoadExtendI64:  "local_load_extend_i64",
	LocalLoadExtendI32S: "local_load_extend_i32_s",
	LocalLoadExtendI32U: "local_load_extend_i32_u",
	LocalLoadExtendI16S: "local_load_extend_i16_s",
	LocalLoadExtendI16U: "local_load_extend_i16_u",
	LocalLoadExtendI8S:  "local_load_extend_i8_s",
	LocalLoadExtendI8U:  "local_load_extend_i8_u",
	LocalLoadExtendF64:  "local_load_extend_f64",
	LocalLoadExtendF32:  "local_load_extend_f32",
	LocalStoreExtendI64: "local_store_extend_i64",
	LocalStoreExtendI32: "local_store_extend_i32",
	LocalStoreExtendI16: "local_store_extend_i16",
	LocalStoreExtendI8:  "local_store_extend_i8",
	LocalStoreExtendF64: "local_store_extend_f64",
	LocalStoreExtendF32: "local_store_extend_f32",

	DataLoadI64:  "data_load_i64",
	DataLoadI32S: "data_load_i32_s",
	DataLoadI32U: "data_load_i32_u",
	DataLoadI16S: "data_load_i16_s",
	DataLoadI16U: "data_load_i16_u",
	DataLoadI8S:  "data_load_i8_s",
	DataLoadI8U:  "data_load_i8_u",
	DataLoadF64:  "data_load_f64",
	DataLoadF32:  "data_load_f32",
	DataStoreI64: "data_store_i64",
	DataStoreI32: "data_store_i32",
	DataStoreI16: "data_store_i16",
	DataStoreI8:  "data_store_i8",
	DataStoreF64: "data_store_f64",
	DataStoreF32: "data_store_f32",

	DataLoadExtendI64:  "data_load_extend_i64",
	DataLoadExtendI32S: "data_load_extend_i32_s",
	DataLoadExtendI32U: "data_load_extend_i32_u",
	DataLoadExtendI16S: "data_load_extend_i16_s",
	DataLoadExtendI16U: "data_load_extend_i16_u",
	DataLoadExtendI8S:  "data_load_extend_i8_s",
	DataLoadExtendI8U:  "data_load_extend_i8_u",
	DataLoadExtendF64:  "data_load_extend_f64",
	DataLoadExtendF32:  "data_load_extend_f32",
	DataStoreExtendI64: "data_store_extend_i64",
	DataStoreExtendI32: "data_store_extend_i32",
	DataStoreExtendI16: "data_store_extend_i16",
	DataStoreExtendI8:  "data_store_extend_i8",
	DataStoreExtendF64: "data_store_extend_f64",
	DataStoreExtendF32: "data_store_extend_f32",

	HeapLoadI64:  "heap_load_i64",
	HeapLoadI32S: "heap_load_i32_s",
	HeapLoadI32U: "heap_load_i32_u",
	HeapLoadI16S: "heap_load_i16_s",
	HeapLoadI16U: "heap_load_i16_u",
	HeapLoadI8S:  "heap_load_i8_s",
	HeapLoadI8U:  "heap_load_i8_u",
	HeapLoadF64:  "heap_load_f64",
	HeapLoadF32:  "heap_load_f32",
	HeapStoreI64: "heap_store_i64",
	HeapStoreI32: "heap_store_i32",
	HeapStoreI16: "heap_store_i16",
	HeapStoreI8:  "heap_store_i8",
	HeapStoreF64: "heap_store_f64",
	HeapStoreF32: "heap_store_f32",

	HeapFill:     "heap_fill",
	HeapCopy:     "heap_copy",
	HeapCapacity: "heap_capacity",
	HeapResize:   "heap_resize",

	TruncateI64ToI32: "truncate_i64_to_i32",
	ExtendI32SToI64:  "extend_i32_s_to_i64",
	ExtendI32UToI64:  "extend_i32_u_to_i64",
	DemoteF64ToF32:   "demote_f64_to_f32",
	PromoteF32ToF64:  "promote_f32_to_f64",
	ConvertF32ToI32S: "convert_f32_to_i32_s",
	ConvertF32ToI32U: "convert_f32_to_i32_u",
	ConvertF64ToI32S: "convert_f64_to_i32_s",
	ConvertF64ToI32U: "convert_f64_to_i32_u",
	ConvertF32ToI64S: "convert_f32_to_i64_s",
	ConvertF32ToI64U: "convert_f32_to_i64_u",
	ConvertF64ToI64S: "convert_f64_to_i64_s",
	ConvertF64ToI64U: "convert_f64_to_i64_u",
	ConvertI32SToF32: "convert_i32_s_to_f32",
	ConvertI32UToF32: "convert_i32_u_to_f32",
	ConvertI64SToF32: "convert_i64_s_to_f32",
	ConvertI64UToF32: "convert_i64_u_to_f32",
	ConvertI32SToF64: "convert_i32_s_to_f64",
	ConvertI32UToF64: "convert_i32_u_to_f64",
	ConvertI64SToF64: "convert_i64_s_to_f64",
	ConvertI64UToF64: "convert_i64_u_to_f64",

	EqzI32: "eqz_i32",
	NezI32: "nez_i32",
	EqI32:  "eq_i32",
	NeI32:  "ne_i32",
	LtI32S: "lt_i32_s",
	LtI32U: "lt_i32_u",
	GtI32S: "gt_i32_s",
	GtI32U: "gt_i32_u",
	LeI32S: "le_i32_s",
	LeI32U: "le_i32_u",
	GeI32S: "ge_i32_s",
	GeI32U: "ge_i32_u",
	EqzI64: "eqz_i64",
	NezI64: "nez_i64",
	EqI64:  "eq_i64",
	NeI64:  "ne_i64",
	LtI64S: "lt_i64_s",
	LtI64U: "lt_i64_u",
	GtI64S: "gt_i64_s",
	GtI64U: "gt_i64_u",
	LeI64S: "le_i64_s",
	LeI64U: "le_i64_u",
	GeI64S: "ge_i64_s",
	GeI64U: "ge_i64_u",
	EqF32:  "eq_f32",
	NeF32:  "ne_f32",
	LtF32:  "lt_f32",
	GtF32:  "gt_f32",
	LeF32:  "le_f32",
	GeF32:  "ge_f32",
	EqF64:  "eq_f64",
	NeF64:  "ne_f64",
	LtF64:  "lt_f64",
	GtF64:  "gt_f64",
	LeF64:  "le_f64",
	GeF64:  "ge_f64",

	AddI32:    "add_i32",
	SubI32:    "sub_i32",
	AddImmI32: "add_imm_i32",
	SubImmI32: "sub_imm_i32",
	MulI32:    "mul_i32",
	DivI32S:   "div_i32_s",
	DivI32U:   "div_i32_u",
	RemI32S:   "rem_i32_s",
	RemI32U:   "rem_i32_u",
	AddI64:    "add_i64",
	SubI64:    "sub_i64",
	AddImmI64: "add_imm_i64",
	SubImmI64: "sub_imm_i64",
	MulI64:    "mul_i64",
	DivI64S:   "div_i64_s",
	DivI64U:   "div_i64_u",
	RemI64S:   "rem_i64_s",
	RemI64U:   "rem_i64_u",
	AddF32:    "add_f32",
	SubF32:    "sub_f32",
	MulF32:    "mul_f32",
	DivF32:    "div_f32",
	AddF64:    "add_f64",
	SubF64:    "sub_f64",
	MulF64:    "mul_f64",
	DivF64:    "div_f64",

	And:                   "and",
	Or:                    "or",
	Xor:                   "xor",
	Not:                   "not",
	ShiftLeftI32:          "shift_left_i32",
	ShiftRightI32S:        "shift_right_i32_s",
	ShiftRightI32U:        "shift_right_i32_u",
	RotateLeftI32:         "rotate_left_i32",
	RotateRightI32:        "rotate_right_i32",
	CountLeadingZerosI32:  "count_leading_zeros_i32",
	CountLeadingOnesI32:   "count_leading_ones_i32",
	CountTrailingZerosI32: "count_trailing_zeros_i32",
	CountOnesI32:          "count_ones_i32",
	ShiftLeftI64:          "shift_left_i64",
	ShiftRightI64S:        "shift_right_i64_s",
	ShiftRightI64U:        "shift_right_i64_u",
	RotateLeftI64:         "rotate_left_i64",
	RotateRightI64:        "rotate_right_i64",
	CountLeadingZerosI64:  "count_leading_zeros_i64",
	CountLeadingOnesI64:   "count_leading_ones_i64",
	CountTrailingZerosI64: "count_trailing_zeros_i64",
	CountOnesI64:          "count_ones_i64",

	AbsI32:                   "abs_i32",
	NegI32:                   "neg_i32",
	AbsI64:                   "abs_i64",
	NegI64:                   "neg_i64",
	AbsF32:                   "abs_f32",
	NegF32:                   "neg_f32",
	CopysignF32:              "copysign_f32",
	SqrtF32:                  "sqrt_f32",
	MinF32:                   "min_f32",
	MaxF32:                   "max_f32",
	CeilF32:                  "ceil_f32",
	FloorF32:                 "floor_f32",
	RoundHalfAwayFromZeroF32: "round_half_away_from_zero_f32",
	RoundHalfToEvenF32:       "round_half_to_even_f32",
	TruncF32:                 "trunc_f32",
	FractF32:                 "fract_f32",
	CbrtF32:                  "cbrt_f32",
	ExpF32:                   "exp_f32",
	Exp2F32:                  "exp2_f32",
	LnF32:                    "ln_f32",
	Log2F32:                  "log2_f32",
	Log10F32:                 "log10_f32",
	SinF32:                   "sin_f32",
	CosF32:                   "cos_f32",
	TanF32:                   "tan_f32",
	AsinF32:                  "asin_f32",
	AcosF32:                  "acos_f32",
	AtanF32:                  "atan_f32",
	PowF32:                   "pow_f32",
	LogF32:                   "log_f32",
	AbsF64:                   "abs_f64",
	NegF64:                   "neg_f64",
	CopysignF64:              "copysign_f64",
	SqrtF64:                  "sqrt_f64",
	MinF64:                   "min_f64",
	MaxF64:                   "max_f64",
	CeilF64:                  "ceil_f64",
	FloorF64:                 "floor_f64",
	RoundHalfAwayFromZeroF64: "round_half_away_from_zero_f64",
	RoundHalfToEvenF64:       "round_half_to_even_f64",
	TruncF64:                 "trunc_f64",
	FractF64:                 "fract_f64",
	CbrtF64:                  "cbrt_f64",
	ExpF64:                   "exp_f64",
	Exp2F64:                  "exp2_f64",
	LnF64:                    "ln_f64",
	Log2F64:                  "log2_f64",
	Log10F64:                 "log10_f64",
	SinF64:                   "sin_f64",
	CosF64:                   "cos_f64",
	TanF64:                   "tan_f64",
	AsinF64:                  "asin_f64",
	AcosF64:                  "acos_f64",
	AtanF64:                  "atan_f64",
	PowF64:                   "pow_f64",
	LogF64:                   "log_f64",

	End:      "end",
	Block:    "block",
	Break:    "break",
	Recur:    "recur",
	BlockAlt: "block_alt",
	BreakAlt: "break_alt",
	BlockNez: "block_nez",

	Call:    "call",
	Dyncall: "dyncall",
	Extcall: "extcall",

	Panic: "panic",
}

// Convert opcode to its mnemonic for use with Print/Sprint
func (o Opcode) String() string {
	str, ok := opcodeNames[o]
	if !ok {
		str = "?unknown?"
	}
	return str
}
