package constvars

const (
	RegexContainAtLeastOneSpecialChar = `.*[!@#$%^&*(),.?":{}|<>].*`
	RegexContainAtLeastOneUppercase   = `.*[A-Z].*`
	RegexEmail                        = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	RegexObjectIDHex                  = `^[a-fA-F0-9]{24}$`
	RegexDateYYYYMMDD                 = `^\d{4}-\d{2}-\d{2}$`
)
