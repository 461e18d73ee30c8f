package stat

import "math"

// z975 two-sided 95% normal quantile used by the Wald intervals
const z975 = 1.96

// Table 2x2 contingency counts of a group of individuals
// A: cases in the group, B: cases outside, C: controls in the group, D: controls outside
type Table struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
	C int `json:"c" yaml:"c"`
	D int `json:"d" yaml:"d"`
}

// NewTable derives the outside counts from the class sizes
func NewTable(a, c, nbCase, nbControl int) Table {
	return Table{A: a, B: nbCase - a, C: c, D: nbControl - c}
}

// ratio divides and maps a zero denominator to +Inf
func ratio(num, den float64) float64 {
	if den == 0 {
		return math.Inf(1)
	}
	return num / den
}

// OddsRatio a*d / (b*c)
func OddsRatio(a, b, c, d int) float64 {
	return ratio(float64(a)*float64(d), float64(b)*float64(c))
}

// RiskRatio case rate over control rate
func RiskRatio(a, b, c, d int) float64 {
	caseSupport := float64(a) / float64(a+b)
	controlSupport := float64(c) / float64(c+d)
	return ratio(caseSupport, controlSupport)
}

// RiskDifference absolute risk difference, case rate minus control rate
func RiskDifference(a, b, c, d int) float64 {
	caseSupport := float64(a) / float64(a+b)
	controlSupport := float64(c) / float64(c+d)
	return caseSupport - controlSupport
}

// wald exp(ln(r) + sign*1.96*se). An infinite ratio keeps infinite bounds.
func wald(r, se float64, sign float64) float64 {
	if math.IsInf(r, 1) {
		return r
	}
	return math.Exp(math.Log(r) + sign*z975*se)
}

func oddsSE(a, b, c, d int) float64 {
	return math.Sqrt(1/float64(a) + 1/float64(b) + 1/float64(c) + 1/float64(d))
}

func riskSE(a, b, c, d int) float64 {
	return math.Sqrt(1/float64(a) - 1/float64(a+b) + 1/float64(c) - 1/float64(c+d))
}

// LCI lower confidence bound of an odds ratio
func LCI(odd float64, a, b, c, d int) float64 {
	return wald(odd, oddsSE(a, b, c, d), -1)
}

// UCI upper confidence bound of an odds ratio
func UCI(odd float64, a, b, c, d int) float64 {
	return wald(odd, oddsSE(a, b, c, d), 1)
}

// RLCI lower confidence bound of a risk ratio
func RLCI(rr float64, a, b, c, d int) float64 {
	return wald(rr, riskSE(a, b, c, d), -1)
}

// PValue hypergeometric probability of the table,
// (a+b)!(c+d)!(a+c)!(b+d)! / (a!b!c!d!n!), evaluated in log space so that large
// samples do not overflow.
func PValue(a, b, c, d int) float64 {
	n := a + b + c + d
	logP := lgamma(a+b+1) + lgamma(c+d+1) + lgamma(a+c+1) + lgamma(b+d+1) -
		lgamma(a+1) - lgamma(b+1) - lgamma(c+1) - lgamma(d+1) - lgamma(n+1)
	return math.Exp(logP)
}

func lgamma(x int) float64 {
	v, _ := math.Lgamma(float64(x))
	return v
}

// Chi2 chi-square statistic of the table, 0 when undefined
func Chi2(a, b, c, d int) float64 {
	x := float64(a + b)
	y := float64(c + d)
	yaMinXc := y*float64(a) - x*float64(c)
	one := yaMinXc / (float64(a+c) * (x + y - float64(a+c)))
	if math.IsNaN(one) || math.IsInf(one, 0) {
		return 0
	}
	two := yaMinXc / (x * y)
	return one * two * (x + y)
}

// nlogn -n*log(n), 0 at n=0
func nlogn(n float64) float64 {
	if n == 0 {
		return 0
	}
	return -math.Log(n) * n
}

// InfoGain information gain of splitting the population on the group, -1 when undefined
func InfoGain(a, b, c, d int) float64 {
	posTot := float64(a + b)
	negTot := float64(c + d)
	pos := float64(a)
	neg := float64(c)

	tot := posTot + negTot
	base := nlogn(posTot/tot) + nlogn(negTot/tot)

	covered := pos + neg
	notCovered := tot - covered
	calc := covered*(nlogn(pos/covered)+nlogn(neg/covered)) +
		notCovered*(nlogn((posTot-pos)/notCovered)+nlogn((negTot-neg)/notCovered))
	if math.IsNaN(calc) {
		return -1
	}
	return base - calc/tot
}
