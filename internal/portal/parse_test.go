package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileHTML = `<html><body>
<table><tr>
<td align="center">
<table>
  <tr><td> Name </td></tr>
  <tr><td>Register No</td></tr>
  <tr><td>Branch</td></tr>
</table>
<table>
  <tr><td> ARUN KUMAR </td></tr>
  <tr><td>21 CS 042</td></tr>
  <tr><td>CSE</td></tr>
</table>
</td>
</tr></table>
</body></html>`

const resultsHTML = `<html><body>
<select name="exam">
  <option value=" SEM31 ">Nov 2023</option>
  <option value="SEM42">Apr 2024</option>
</select>
<div id="div_1">
  <table>
    <tr class="row1">
      <td class="tablecol2">III</td><td class="tablecol2">CS301</td>
      <td class="tablecol2">78$</td><td class="tablecol2">PASS</td>
    </tr>
    <tr class="row1">
      <td class="tablecol2">III</td><td class="tablecol2">CS302</td>
      <td class="tablecol2">64</td><td class="tablecol2">PASS</td>
    </tr>
  </table>
</div>
<div id="div_2">
  <table>
    <tr class="row1">
      <td class="tablecol2">IV</td><td class="tablecol2">CS401</td>
      <td class="tablecol2">81</td><td class="tablecol2">PASS</td>
    </tr>
  </table>
</div>
</body></html>`

const hallticketHTML = `<html><body>
<form><input id="exam_cd" type="hidden" value=" SEM3 "></form>
<form><input id="exam_cd" type="hidden" value="SEM4"></form>
<form><input id="exam_cd" type="hidden" value=""></form>
<form><input id="exam_cd" type="hidden" value="SEM3"></form>
</body></html>`

func TestParseProfile(t *testing.T) {
	profile, err := ParseProfile(profileHTML)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Name":        "ARUN KUMAR",
		"Register No": "21 CS 042",
		"Branch":      "CSE",
	}, profile)
}

func TestParseProfile_MissingLayout(t *testing.T) {
	_, err := ParseProfile("<html><body>nothing here</body></html>")
	assert.Error(t, err)
}

func TestParseExamCodes(t *testing.T) {
	codes := ParseExamCodes(resultsHTML)
	assert.Equal(t, []string{"SEM3", "SEM4"}, codes)
}

func TestParseResult(t *testing.T) {
	result, err := ParseResult(resultsHTML, "SEM3")
	require.NoError(t, err)

	assert.Equal(t, "III", result.Semester)
	assert.Equal(t, map[string][]string{
		"CS301": {"78", "PASS"},
		"CS302": {"64", "PASS"},
	}, result.Papers)
}

func TestParseResult_SecondDiv(t *testing.T) {
	result, err := ParseResult(resultsHTML, "SEM4")
	require.NoError(t, err)

	assert.Equal(t, "IV", result.Semester)
	assert.Contains(t, result.Papers, "CS401")
}

func TestParseResult_InvalidCode(t *testing.T) {
	_, err := ParseResult(resultsHTML, "SEM9")
	require.Error(t, err)
	// The error must name the valid codes so the assistant can correct itself.
	assert.Contains(t, err.Error(), "SEM3")
	assert.Contains(t, err.Error(), "SEM4")
}

func TestParseHallticketCodes(t *testing.T) {
	codes := ParseHallticketCodes(hallticketHTML)
	assert.Equal(t, []string{"SEM3", "SEM4"}, codes)
}

func TestParseHallticketCodes_None(t *testing.T) {
	codes := ParseHallticketCodes("<html><body></body></html>")
	assert.Empty(t, codes)
}
