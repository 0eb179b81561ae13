package vocabulary

// builtin holds the core words and phrases for each supported language.
// Positions are aligned across languages, so index i of one list translates
// index i of every other list.
var builtin = map[string][]string{
	"en": {
		"hello", "goodbye", "please", "thank you", "yes", "no", "sorry", "help", "friend", "water",
		"food", "bathroom", "where", "is", "my", "name", "what", "how", "much", "one",
		"two", "three", "love", "family", "school", "teacher", "student", "learn", "speak",
		"more", "again", "repeat", "slowly", "fast", "understand", "not", "can", "do", "like",
	},
	"es": {
		"hola", "adiós", "por favor", "gracias", "sí", "no", "lo siento", "ayuda", "amigo", "agua",
		"comida", "baño", "dónde", "es", "mi", "nombre", "qué", "cómo", "cuánto", "uno",
		"dos", "tres", "amor", "familia", "escuela", "maestro", "estudiante", "aprender", "hablar",
		"más", "otra vez", "repetir", "despacio", "rápido", "entender", "no", "puede", "hacer", "gustar",
	},
	"fr": {
		"bonjour", "au revoir", "s'il vous plaît", "merci", "oui", "non", "désolé", "aide", "ami", "eau",
		"nourriture", "toilettes", "où", "est", "mon", "nom", "quoi", "comment", "combien", "un",
		"deux", "trois", "amour", "famille", "école", "professeur", "étudiant", "apprendre", "parler",
		"plus", "encore", "répéter", "lentement", "vite", "comprendre", "pas", "pouvoir", "faire", "aimer",
	},
	"de": {
		"hallo", "auf Wiedersehen", "bitte", "danke", "ja", "nein", "entschuldigung", "hilfe", "freund", "wasser",
		"essen", "badezimmer", "wo", "ist", "mein", "name", "was", "wie", "wie viel", "eins",
		"zwei", "drei", "liebe", "familie", "schule", "lehrer", "schüler", "lernen", "sprechen",
		"mehr", "wieder", "wiederholen", "langsam", "schnell", "verstehen", "nicht", "können", "machen", "mögen",
	},
	"zh": {
		"你好", "再见", "请", "谢谢", "是", "不是", "对不起", "帮助", "朋友", "水",
		"食物", "洗手间", "哪里", "是", "我的", "名字", "什么", "怎么", "多少", "一",
		"二", "三", "爱", "家庭", "学校", "老师", "学生", "学习", "说",
		"更多", "再一次", "重复", "慢", "快", "理解", "不是", "能", "做", "喜欢",
	},
	"ja": {
		"こんにちは", "さようなら", "お願いします", "ありがとう", "はい", "いいえ", "ごめんなさい", "助けて", "友達", "水",
		"食べ物", "トイレ", "どこ", "です", "私の", "名前", "何", "どう", "いくら", "一",
		"二", "三", "愛", "家族", "学校", "先生", "学生", "学ぶ", "話す",
		"もっと", "もう一度", "繰り返す", "ゆっくり", "速く", "理解する", "ない", "できる", "する", "好き",
	},
	"ar": {
		"مرحبا", "وداعا", "من فضلك", "شكرا", "نعم", "لا", "آسف", "مساعدة", "صديق", "ماء",
		"طعام", "حمام", "أين", "هو", "لي", "اسم", "ماذا", "كيف", "كم", "واحد",
		"اثنان", "ثلاثة", "حب", "عائلة", "مدرسة", "معلم", "طالب", "يتعلم", "يتكلم",
		"أكثر", "مرة أخرى", "كرر", "ببطء", "بسرعة", "يفهم", "ليس", "يمكن", "يفعل", "يحب",
	},
	"ru": {
		"привет", "до свидания", "пожалуйста", "спасибо", "да", "нет", "извини", "помощь", "друг", "вода",
		"еда", "ванная", "где", "есть", "мой", "имя", "что", "как", "сколько", "один",
		"два", "три", "любовь", "семья", "школа", "учитель", "студент", "учиться", "говорить",
		"ещё", "опять", "повторить", "медленно", "быстро", "понимать", "не", "мочь", "делать", "нравиться",
	},
	"ko": {
		"안녕하세요", "안녕히 가세요", "제발", "감사합니다", "네", "아니요", "미안합니다", "도와주세요", "친구", "물",
		"음식", "화장실", "어디", "이다", "나의", "이름", "무엇", "어떻게", "얼마", "하나",
		"둘", "셋", "사랑", "가족", "학교", "선생님", "학생", "배우다", "말하다",
		"더", "다시", "반복하다", "천천히", "빠르게", "이해하다", "아니다", "할 수 있다", "하다", "좋아하다",
	},
	"pt": {
		"olá", "adeus", "por favor", "obrigado", "sim", "não", "desculpe", "ajuda", "amigo", "água",
		"comida", "banheiro", "onde", "é", "meu", "nome", "o que", "como", "quanto", "um",
		"dois", "três", "amor", "família", "escola", "professor", "aluno", "aprender", "falar",
		"mais", "de novo", "repetir", "devagar", "rápido", "entender", "não", "poder", "fazer", "gostar",
	},
}

var labels = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"zh": "Chinese",
	"ja": "Japanese",
	"ar": "Arabic",
	"ru": "Russian",
	"ko": "Korean",
	"pt": "Portuguese",
}

// locales maps language codes to the BCP-47 tags used by speech capture and
// playback.
var locales = map[string]string{
	"en": "en-US",
	"es": "es-ES",
	"fr": "fr-FR",
	"de": "de-DE",
	"zh": "zh-CN",
	"ja": "ja-JP",
	"ar": "ar-SA",
	"ru": "ru-RU",
	"ko": "ko-KR",
	"pt": "pt-PT",
}
