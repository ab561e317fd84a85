package catalog

// Topic is an entry in the educational detour library. Keywords are matched
// against normalised client text; the first matching topic wins.
type Topic struct {
	Name      string
	Keywords  []string
	Explainer string
}

// Topics is the fixed educational library checked by the detour matcher.
// Order matters: more specific topics come first.
var Topics = []Topic{
	{
		Name:      "greenwashing",
		Keywords:  []string{"greenwash", "anti greenwashing", "greenwashing rule"},
		Explainer: "Greenwashing is when a product's sustainability claims overstate what it actually does. The FCA's anti-greenwashing rule requires every sustainability claim we make to be fair, clear, and not misleading, which is why we record your preferences so precisely.",
	},
	{
		Name:      "sdr_labels",
		Keywords:  []string{"sdr", "what is a label", "sustainability label", "investment label", "what are the labels"},
		Explainer: "SDR labels are the FCA's four sustainability categories: Focus (already sustainable assets), Improvers (assets improving under stewardship), Impact (measurable real-world outcomes), and Mixed Goals (a blend of the three). A fund may only use a label if it meets strict criteria.",
	},
	{
		Name:      "capacity_for_loss",
		Keywords:  []string{"capacity for loss", "cfl", "afford to lose"},
		Explainer: "Capacity for loss measures how much investment loss you could absorb without it affecting your standard of living. It is about your financial circumstances, not your feelings about risk, which is why we ask about it separately from risk tolerance.",
	},
	{
		Name:      "risk_tolerance",
		Keywords:  []string{"attitude to risk", "atr", "risk scale", "risk tolerance", "what is risk"},
		Explainer: "Attitude to risk is how comfortable you are with the value of your investments moving up and down. We record it on a 1-7 scale, where 1 means you want minimal movement and 7 means you accept large swings in pursuit of higher returns.",
	},
	{
		Name:      "exclusions",
		Keywords:  []string{"exclusion", "screen out", "avoid investing", "negative screening"},
		Explainer: "Exclusions let you screen out sectors you do not want to hold, such as tobacco or thermal coal. Each exclusion can carry a revenue threshold; for example, excluding companies that earn more than 5% of revenue from fossil fuels.",
	},
	{
		Name:      "stewardship",
		Keywords:  []string{"stewardship", "engagement", "voting", "fund manager influence"},
		Explainer: "Stewardship is how fund managers use their influence as shareholders, through voting and engagement, to improve how companies behave. It is the main mechanism behind the Improvers label.",
	},
	{
		Name:      "fees",
		Keywords:  []string{"fee", "charge", "cost", "ongoing charges"},
		Explainer: "Fund charges are shown as an ongoing charges figure, a yearly percentage of your investment. Your report will list the charges for anything we discuss, and your adviser will confirm total costs before any recommendation.",
	},
}

// rationale maps an onboarding or options step to the compliance
// justification returned by the "why do you need this?" detour.
// Keys are stage plus step index.
type rationaleKey struct {
	Stage string
	Step  int
}

var rationales = map[rationaleKey]string{
	{StageOnboarding, 0}: "We record who is investing because suitability rules differ for individuals, joint holders, trusts, and corporate clients.",
	{StageOnboarding, 1}: "Your objective anchors the whole suitability assessment: a recommendation has to serve what you are actually trying to achieve.",
	{StageOnboarding, 2}: "Your investment horizon is a core suitability input: the time you can stay invested changes which products and risk levels are appropriate for you.",
	{StageOnboarding, 3}: "Regulators require us to assess your attitude to risk so any recommendation matches the level of volatility you are genuinely comfortable with.",
	{StageOnboarding, 4}: "Capacity for loss is a Consumer Duty requirement: we must check a loss would not damage your standard of living, independent of how you feel about risk.",
	{StageOnboarding, 5}: "Liquidity needs tell us how much of your money must stay accessible, which constrains how much can be tied up in longer-term investments.",
	{StageOnboarding, 6}: "We record your knowledge and experience so advice is pitched correctly and we can evidence that you understood what was discussed.",
	{StageOnboarding, 7}: "A financial disclosure is optional, but recording your decision either way is part of demonstrating the advice was suitable on the information available.",
	{StageOnboarding, 8}: "Income, assets, and liabilities let your adviser sense-check affordability and capacity for loss against real numbers rather than estimates.",
	{StageConsent, 0}:    "UK GDPR requires your explicit consent before we process personal financial information for this advice session.",
	{StageConsent, 1}:    "We ask about electronic delivery because regulations require documents to reach you in a durable medium you have agreed to.",
	{StageConsent, 2}:    "Future-contact consent is recorded separately so we never contact you for reviews or marketing without a documented basis.",
	{StageConsent, 3}:    "When you allow future contact we must record the specific purpose, so contact stays within what you agreed to.",
	{StageOptions, 0}:    "The FCA expects sustainability preferences to be captured for every client, including recording when you have none, so the recommendation can be evidenced either way.",
	{StageOptions, 1}:    "Recording which SDR labels interest you keeps any product we suggest inside the categories you actually asked for.",
	{StageOptions, 2}:    "Themes sharpen the search within your chosen labels and are written into the report so the adviser can evidence why funds were shortlisted.",
	{StageOptions, 3}:    "Exclusions are binding constraints on your portfolio, so each one must be recorded with a precise sector and threshold.",
	{StageOptions, 4}:    "Impact goals are required for impact-labelled choices because those funds must report against defined outcomes.",
	{StageOptions, 5}:    "Your view on engagement tells us how much weight to give stewardship activity when comparing funds.",
	{StageOptions, 6}:    "Impact investing only works with ongoing reporting, so we must record how often you want to receive it.",
	{StageOptions, 7}:    "Sustainable strategies can behave differently from conventional ones, so we record how much return trade-off you would accept before recommending them.",
}

// Rationale returns the compliance justification for the given stage and
// step, falling back to a generic suitability explanation.
func Rationale(stage string, step int) string {
	if r, ok := rationales[rationaleKey{stage, step}]; ok {
		return r
	}
	return "We only collect information the FCA requires to evidence that any advice you receive is suitable for you."
}
