package render

// Letterhead holds the company-specific blocks printed on every invoice.
type Letterhead struct {
	CompanyName   string
	BankName      string
	AccountNumber string
	IFSC          string
	UPI           string
	Declaration   string
	LogoPath      string
	FooterPath    string
}

// DefaultDeclaration is printed under the amount in words.
const DefaultDeclaration = "We declare that this invoice shows the actual price of the Goods described " +
	"and that all particulars are true and correct."

// DefaultLetterhead returns the letterhead used when none is configured.
func DefaultLetterhead() Letterhead {
	return Letterhead{
		CompanyName:   "VR TECH HVAC Solutions",
		BankName:      "HDFC bank",
		AccountNumber: "5010 0562 3633 08",
		IFSC:          "HDFC0003760",
		UPI:           "9790811296",
		Declaration:   DefaultDeclaration,
	}
}

// withDefaults fills empty text fields from DefaultLetterhead. Image paths
// are left alone; an empty path means no image.
func (lh Letterhead) withDefaults() Letterhead {
	def := DefaultLetterhead()
	if lh.CompanyName == "" {
		lh.CompanyName = def.CompanyName
	}
	if lh.BankName == "" {
		lh.BankName = def.BankName
	}
	if lh.AccountNumber == "" {
		lh.AccountNumber = def.AccountNumber
	}
	if lh.IFSC == "" {
		lh.IFSC = def.IFSC
	}
	if lh.UPI == "" {
		lh.UPI = def.UPI
	}
	if lh.Declaration == "" {
		lh.Declaration = def.Declaration
	}
	return lh
}
