package dialog

import (
	"strings"

	"github.com/fudosan-dx/satei-bot/internal/domain"
)

// SummaryLines projects a collected answer set into the ordered, labeled
// lines of the confirmation card. Pure function; the line order here is the
// canonical order for the card.
func SummaryLines(a domain.Answers) []string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, "【"+label+"】"+value)
		}
	}

	add("物件種別", a.Type.Label())

	addr := a.Address.Join()
	if a.ApartmentName != "" {
		addr += " " + a.ApartmentName
		if a.RoomNo != "" {
			addr += " " + a.RoomNo
		}
	}
	add("住所", strings.TrimSpace(addr))

	add("面積", areaLine(a))

	if domain.Requirements(a.Type).YearBuilt {
		year := a.YearBuilt
		if year == "" {
			year = a.AgeBuilt
		}
		add("築年", year)
	}

	add("現況", a.Occupancy)
	add("所有者", a.OwnerType)
	add("売却理由", a.SaleReason)
	if a.Method != "" {
		add("査定方法", a.Method.Label())
	}
	add("時期", a.SaleTiming)

	contact := a.ContactMethod.Label()
	if contact != "" && a.Name != "" {
		contact += "／【氏名】" + a.Name
	}
	add("ご連絡", contact)

	add("備考", a.Notes)
	return lines
}

// areaLine renders the type-conditional area summary. For houses a missing
// sibling renders empty rather than dropping the whole line, so a partial
// record stays visible.
func areaLine(a domain.Answers) string {
	switch domain.Requirements(a.Type).AreaKind {
	case domain.AreaExclusive:
		if a.Area.Exclusive == "" {
			return ""
		}
		line := "専有 " + a.Area.Exclusive + "㎡"
		if a.Layout != "" {
			line += "／【間取り】" + a.Layout
		}
		return line
	case domain.AreaLandBuilding:
		if a.Area.Land == "" && a.Area.Building == "" {
			return ""
		}
		line := "土地 " + a.Area.Land + "㎡／建物 " + a.Area.Building + "㎡"
		if a.Layout != "" {
			line += "／【間取り】" + a.Layout
		}
		return line
	case domain.AreaLandOnly:
		if a.Area.Land == "" {
			return ""
		}
		return "土地 " + a.Area.Land + "㎡"
	default:
		return ""
	}
}
