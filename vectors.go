package avrdisasm

// avrVectorTable names the fixed interrupt-vector byte addresses of the
// common small-flash AVR devices (the ATmega328P-class 2-byte-per-vector
// layout). This is a generic default, not per-part data: a larger device
// with 4-byte vectors would shift everything after RESET, which is out of
// scope here (the spec treats exact MCU variant detail as a non-goal).
// Adapted from the teacher's addressToOsCallName/osVectorAddresses idea
// (chriskillpack-bbcdisasm/opcodes.go), applied to AVR's own ABI instead
// of BBC Micro OS calls.
var avrVectorTable = map[uint32]string{
	0x0000: "RESET",
	0x0002: "INT0",
	0x0004: "INT1",
	0x0006: "PCINT0",
	0x0008: "PCINT1",
	0x000A: "PCINT2",
	0x000C: "WDT",
	0x000E: "TIMER2_COMPA",
	0x0010: "TIMER2_COMPB",
	0x0012: "TIMER2_OVF",
	0x0014: "TIMER1_CAPT",
	0x0016: "TIMER1_COMPA",
	0x0018: "TIMER1_COMPB",
	0x001A: "TIMER1_OVF",
	0x001C: "TIMER0_COMPA",
	0x001E: "TIMER0_COMPB",
	0x0020: "TIMER0_OVF",
	0x0022: "SPI_STC",
	0x0024: "USART_RX",
	0x0026: "USART_UDRE",
	0x0028: "USART_TX",
	0x002A: "ADC",
	0x002C: "EE_READY",
	0x002E: "ANALOG_COMP",
	0x0030: "TWI",
	0x0032: "SPM_READY",
}

// vectorName reports the interrupt vector name at a fixed byte address, if
// any. Used only to annotate jmp/call/rjmp/rcall targets when
// --vector-comments is set; it never drives decoding.
func vectorName(address uint32) (string, bool) {
	name, ok := avrVectorTable[address]
	return name, ok
}
