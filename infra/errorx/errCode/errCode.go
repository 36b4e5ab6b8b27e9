package errCode

type Code int

const (
	OK Code = iota
	EMPTY_VALUE
	INVALID_VALUE
	EMPTY_INPUT    // 没有可用的数值样本
	INVALID_CONFIG // bins / width 等配置非法
	IO_FAILURE
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case EMPTY_VALUE:
		return "EMPTY_VALUE"
	case INVALID_VALUE:
		return "INVALID_VALUE"
	case EMPTY_INPUT:
		return "EMPTY_INPUT"
	case INVALID_CONFIG:
		return "INVALID_CONFIG"
	case IO_FAILURE:
		return "IO_FAILURE"
	default:
		return "UNKNOWN"
	}
}
