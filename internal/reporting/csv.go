package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders scored candidates as a CSV string.
func RenderCSV(rows []ScoreRow) string {
	var sb strings.Builder

	sb.WriteString("address,symbol,final_score,confidence,data_completeness,degraded,")
	sb.WriteString("base,overview,whale,volume_price,security,dex_liquidity,vlr,routing,findings\n")

	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%.2f,%.4f,%.4f,%t,%.1f,%.1f,%.1f,%.1f,%.1f,%.1f,%.1f,%.1f,%d\n",
			row.Address,
			row.Symbol,
			row.FinalScore,
			row.Confidence,
			row.DataCompleteness,
			row.DegradedMode,
			row.Components.Base,
			row.Components.Overview,
			row.Components.Whale,
			row.Components.VolumePrice,
			row.Components.Security,
			row.Components.DexLiquidity,
			row.Components.VLR,
			row.Components.Routing,
			len(row.Findings),
		))
	}

	return sb.String()
}
