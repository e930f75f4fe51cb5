package classify

// Category names one marker category. Each category is evidence for exactly
// one axis formula (connector is extracted but feeds no formula, matching
// the historical rule set).
type Category string

const (
	// Lead_Directiveness
	CatDirective Category = "directive"
	CatAssertive Category = "assertive"
	CatProposal  Category = "proposal"

	// Collaboration
	CatCollaborative Category = "collaborative"
	CatOptions       Category = "options"
	CatSeekOpinion   Category = "seek_opinion"

	// Active_Listening
	CatQuestionDeep    Category = "question_deep"
	CatQuestionClarify Category = "question_clarify"
	CatQuestionEmotion Category = "question_emotion"

	// Logical_Expression
	CatStructure  Category = "structure"
	CatCausal     Category = "causal"
	CatAnalytical Category = "analytical"

	// Emotional_Expression
	CatEmotionPositive Category = "emotion_positive"
	CatEmotionNegative Category = "emotion_negative"
	CatEmotionNeutral  Category = "emotion_neutral"
	CatSubjective      Category = "subjective"

	// Empathy_Care
	CatEmpathy Category = "empathy"
	CatCare    Category = "care"
	CatThanks  Category = "thanks"
	CatApology Category = "apology"
	CatCushion Category = "cushion"

	// Brevity
	CatDigression Category = "digression"
	CatConnector  Category = "connector"

	// Structural_Thinking
	CatClassification Category = "classification"
	CatFramework      Category = "framework"
	CatHierarchy      Category = "hierarchy"

	// Abstractness
	CatAbstract Category = "abstract"
	CatConcrete Category = "concrete"

	// Multi_Perspective
	CatPerspective     Category = "perspective"
	CatMultipleOptions Category = "multiple_options"
	CatAnticipate      Category = "anticipate"

	// Self_Reflection
	CatSelfReference   Category = "self_reference"
	CatMentalProcess   Category = "mental_process"
	CatSelfImprovement Category = "self_improvement"

	// Future_Oriented
	CatFutureTime  Category = "future_time"
	CatPlanning    Category = "planning"
	CatPossibility Category = "possibility"

	// Risk_Awareness
	CatRisk           Category = "risk"
	CatConditional    Category = "conditional"
	CatFailure        Category = "failure"
	CatCountermeasure Category = "countermeasure"
)

// markerKeywords is the fixed marker vocabulary. It is built once and never
// mutated at runtime; matching happens against the lower-cased message text.
var markerKeywords = map[Category][]string{
	CatDirective: {"して", "してください", "しよう", "やりましょう", "行きます", "やって"},
	CatAssertive: {"決める", "決定", "確定", "〜だ", "〜である"},
	CatProposal:  {"結論", "方針", "次は", "まず", "方針は"},

	CatCollaborative: {"一緒に", "合わせて", "すり合わせ", "合意", "認識合わせ", "協力"},
	CatOptions:       {"もあり", "選択肢", "どちらか", "案"},
	CatSeekOpinion:   {"どう思う", "意見", "考え", "どうでしょう", "どうかな"},

	CatQuestionDeep:    {"なぜ", "どうやって", "具体的には", "背景は", "前提は", "理由は"},
	CatQuestionClarify: {"教えて", "詳しく", "もう少し", "意図は", "確認", "聞きたい"},
	CatQuestionEmotion: {"困ってる", "大変", "どう感じ", "気持ち"},

	CatStructure:  {"まず", "次に", "つまり", "結論", "根拠", "前提", "整理"},
	CatCausal:     {"なので", "したがって", "なぜなら", "だから", "故に", "ため"},
	CatAnalytical: {"要点", "因果", "仮説", "検証", "分析", "論理"},

	CatEmotionPositive: {"嬉しい", "楽しい", "好き", "ワクワク", "最高", "幸せ", "よかった"},
	CatEmotionNegative: {"不安", "つらい", "悲しい", "ムカつく", "焦る", "モヤモヤ", "困る"},
	CatEmotionNeutral:  {"感じる", "思う", "気持ち"},
	CatSubjective:      {"個人的に", "私は", "正直", "自分的に"},

	CatEmpathy: {"わかる", "なるほど", "たしかに", "それな", "同意", "うんうん"},
	CatCare:    {"お気持ち", "大変", "無理ない", "助かる", "気をつけて", "無理しないで"},
	CatThanks:  {"ありがとう", "ありがと", "感謝", "サンキュー", "ありです"},
	CatApology: {"すみません", "ごめん", "申し訳", "失礼", "すまん"},
	CatCushion: {"もしよければ", "差し支えなければ", "恐縮", "お手数", "できれば"},

	CatDigression: {"ちなみに", "余談", "話はそれます"},
	CatConnector:  {"あと", "それと", "ついでに"},

	CatClassification: {"分類", "要素", "観点", "軸", "カテゴリ", "種類", "パターン", "タイプ", "グループ", "分けると", "2つ", "3つ"},
	CatFramework:      {"kpi", "kgi", "フレーム", "ポイント", "体系", "整理すると", "まとめると", "分けて", "ステップ"},
	CatHierarchy:      {"大枠", "詳細", "上位", "下位", "中でも", "階層", "全体", "部分", "メイン", "サブ"},

	CatAbstract: {"本質", "概念", "抽象", "考え方", "価値観", "そもそも", "一般的に", "原理", "理想", "あり方"},
	CatConcrete: {"具体的に", "例えば", "たとえば", "実際", "実例", "事例", "手順", "現実的に", "実物"},

	CatPerspective:     {"一方で", "別の観点", "逆に", "他方", "視点", "見方", "別の", "もう一つ", "他の", "反対"},
	CatMultipleOptions: {"メリデメ", "メリット", "デメリット", "トレードオフ", "両面", "良い点", "悪い点", "利点", "欠点", "両方"},
	CatAnticipate:      {"という見方", "ただし", "反論", "懸念", "考慮", "でも", "しかし", "とはいえ", "ただ"},

	CatSelfReference:   {"私は", "自分は", "自分としては", "個人的", "僕は", "俺は"},
	CatMentalProcess:   {"気づいた", "感じた", "迷う", "大事にしたい", "思った", "考えた", "悩む", "迷ってる", "わからない"},
	CatSelfImprovement: {"苦手", "課題", "改善したい", "伸ばしたい", "振り返る", "反省", "直したい", "変えたい", "成長", "学び"},

	CatFutureTime:  {"今後", "将来", "これから", "次に", "中長期", "先", "明日", "来週", "来月", "来年", "後で", "いつか"},
	CatPlanning:    {"目指す", "ロードマップ", "スケジュール", "プラン", "ゴール", "計画", "予定", "準備", "段取り", "やること"},
	CatPossibility: {"できそう", "なりうる", "可能性", "想定", "見込み", "かも", "できる", "なるかも", "いけそう"},

	CatRisk:           {"リスク", "懸念", "問題", "炎上", "批判", "副作用", "危険", "心配", "不安", "怖い", "まずい", "ヤバい"},
	CatConditional:    {"ただし", "場合によって", "依存する", "条件", "もし", "次第", "によって", "なら", "だったら"},
	CatFailure:        {"最悪", "詰む", "破綻", "漏洩", "失敗", "ダメ", "無理", "できない", "厳しい", "間に合わない"},
	CatCountermeasure: {"対策", "対応策", "防ぐ", "備え", "回避", "リカバリ", "フォロー", "カバー"},
}

// politeMarkers are counted by occurrence, not presence.
var politeMarkers = []string{"です", "ます", "ください", "いたします"}

// listMarkerTokens are bullet/numbering tokens; list_marker is the number of
// distinct tokens present in a message.
var listMarkerTokens = []string{"1.", "2.", "3.", "①", "②", "③", "- ", "・"}

// Categories returns every marker category in a stable order.
func Categories() []Category {
	return []Category{
		CatDirective, CatAssertive, CatProposal,
		CatCollaborative, CatOptions, CatSeekOpinion,
		CatQuestionDeep, CatQuestionClarify, CatQuestionEmotion,
		CatStructure, CatCausal, CatAnalytical,
		CatEmotionPositive, CatEmotionNegative, CatEmotionNeutral, CatSubjective,
		CatEmpathy, CatCare, CatThanks, CatApology, CatCushion,
		CatDigression, CatConnector,
		CatClassification, CatFramework, CatHierarchy,
		CatAbstract, CatConcrete,
		CatPerspective, CatMultipleOptions, CatAnticipate,
		CatSelfReference, CatMentalProcess, CatSelfImprovement,
		CatFutureTime, CatPlanning, CatPossibility,
		CatRisk, CatConditional, CatFailure, CatCountermeasure,
	}
}
