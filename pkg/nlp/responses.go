package nlp

// ResponseTable holds candidate replies keyed by intent (or FAQ topic) and
// then by language code.
type ResponseTable struct {
	Intents map[Intent]map[string][]string
	FAQ     map[string]map[string][]string
}

func DefaultResponseTable() ResponseTable {
	return ResponseTable{
		Intents: map[Intent]map[string][]string{
			IntentGreeting: {
				"en": {
					"Hello! Nice to meet you. How can I help you today?",
					"Hi there! Great to see you. What would you like to know?",
					"Good day! I'm here to assist you. What can I do for you?",
					"Hello! Welcome! How may I be of service to you?",
				},
				"hi": {
					"नमस्ते! आपसे मिलकर खुशी हुई। आज मैं आपकी कैसे मदद कर सकता हूँ?",
					"हैलो! आपको देखकर अच्छा लगा। आप क्या जानना चाहते हैं?",
					"शुभ दिन! मैं यहाँ आपकी सहायता के लिए हूँ। मैं आपके लिए क्या कर सकता हूँ?",
					"नमस्कार! स्वागत है! मैं आपकी कैसे सेवा कर सकता हूँ?",
				},
			},
			IntentGoodbye: {
				"en": {
					"Goodbye! It was nice talking to you. Take care!",
					"See you later! Have a wonderful day!",
					"Farewell! Thanks for the conversation. Take care!",
					"Goodbye! Hope to talk to you again soon!",
				},
				"hi": {
					"अलविदा! आपसे बात करके अच्छा लगा। खुदा हाफिज!",
					"फिर मिलते हैं! आपका दिन शुभ हो!",
					"विदा! बातचीत के लिए धन्यवाद। खुदा हाफिज!",
					"अलविदा! जल्द ही फिर बात करने की उम्मीद है!",
				},
			},
			IntentHelp: {
				"en": {
					"I'm a voice assistant that can help you with various tasks. I can answer questions, have conversations, and assist with information. What would you like to know?",
					"I'm here to help! I can chat with you, answer questions, and provide information. Just ask me anything!",
					"I'm a multilingual voice bot that supports English and Hindi. I can help with conversations, questions, and general assistance. How can I help you?",
				},
				"hi": {
					"मैं एक वॉयस असिस्टेंट हूँ जो विभिन्न कार्यों में आपकी मदद कर सकता हूँ। मैं सवालों के जवाब दे सकता हूँ, बातचीत कर सकता हूँ और जानकारी प्रदान कर सकता हूँ। आप क्या जानना चाहते हैं?",
					"मैं यहाँ मदद के लिए हूँ! मैं आपसे बात कर सकता हूँ, सवालों के जवाब दे सकता हूँ और जानकारी प्रदान कर सकता हूँ। बस मुझसे कुछ भी पूछें!",
					"मैं एक बहुभाषी वॉयस बॉट हूँ जो अंग्रेजी और हिंदी का समर्थन करता है। मैं बातचीत, सवालों और सामान्य सहायता में मदद कर सकता हूँ। मैं आपकी कैसे मदद कर सकता हूँ?",
				},
			},
			IntentSmallTalk: {
				"en": {
					"I'm doing well, thank you for asking! I'm a voice assistant created to help people. How about you?",
					"I'm great! I enjoy helping people and having conversations. What about you?",
					"I'm doing fantastic! I'm here to assist and chat. How are you doing today?",
				},
				"hi": {
					"मैं ठीक हूँ, पूछने के लिए धन्यवाद! मैं लोगों की मदद करने के लिए बनाया गया एक वॉयस असिस्टेंट हूँ। आप कैसे हैं?",
					"मैं बहुत अच्छा हूँ! मुझे लोगों की मदद करना और बातचीत करना पसंद है। आप कैसे हैं?",
					"मैं बहुत अच्छा हूँ! मैं यहाँ सहायता और बातचीत के लिए हूँ। आज आप कैसे हैं?",
				},
			},
			IntentFAQ: {
				"en": {
					"That's a good question about voice assistants. Could you ask it a little differently so I can find the right answer?",
				},
				"hi": {
					"वॉयस असिस्टेंट के बारे में यह अच्छा सवाल है। क्या आप इसे थोड़ा अलग तरीके से पूछ सकते हैं ताकि मैं सही जवाब दे सकूँ?",
				},
			},
			IntentFallback: {
				"en": {
					"I'm not sure I understood that. Could you please rephrase your question?",
					"I didn't quite catch that. Can you try asking in a different way?",
					"I'm having trouble understanding. Could you please clarify what you're asking?",
					"I'm not sure how to help with that. Could you ask me something else?",
				},
				"hi": {
					"मुझे समझ नहीं आया। क्या आप अपना सवाल दोबारा पूछ सकते हैं?",
					"मुझे समझ नहीं आया। क्या आप इसे अलग तरीके से पूछ सकते हैं?",
					"मुझे समझने में परेशानी हो रही है। क्या आप स्पष्ट कर सकते हैं कि आप क्या पूछ रहे हैं?",
					"मुझे नहीं पता कि इससे कैसे मदद करूं। क्या आप मुझसे कुछ और पूछ सकते हैं?",
				},
			},
		},
		FAQ: map[string]map[string][]string{
			"what_is_voice_bot": {
				"en": {
					"A voice bot is an artificial intelligence assistant that can understand spoken language and respond using speech. I use speech recognition to understand what you say and text-to-speech to respond back to you.",
					"I'm a voice bot - a computer program that can listen to your voice, understand what you're saying, and respond back to you using speech. I can help with conversations, questions, and various tasks.",
				},
				"hi": {
					"वॉयस बॉट एक कृत्रिम बुद्धिमत्ता असिस्टेंट है जो बोली गई भाषा को समझ सकता है और भाषण का उपयोग करके जवाब दे सकता है। मैं स्पीच रिकग्निशन का उपयोग करता हूँ जो आप कहते हैं उसे समझने के लिए और टेक्स्ट-टू-स्पीच का उपयोग आपको जवाब देने के लिए करता हूँ।",
					"मैं एक वॉयस बॉट हूँ - एक कंप्यूटर प्रोग्राम जो आपकी आवाज सुन सकता है, समझ सकता है कि आप क्या कह रहे हैं, और भाषण का उपयोग करके आपको जवाब दे सकता है। मैं बातचीत, सवालों और विभिन्न कार्यों में मदद कर सकता हूँ।",
				},
			},
			"how_it_works": {
				"en": {
					"I work by listening to your voice through a microphone, converting your speech to text using speech recognition technology, understanding what you mean using natural language processing, generating an appropriate response, and then converting that response back to speech using text-to-speech technology.",
					"The process involves: 1) Listening to your voice, 2) Converting speech to text, 3) Understanding your intent, 4) Generating a response, and 5) Converting the response back to speech for you to hear.",
				},
				"hi": {
					"मैं माइक्रोफोन के माध्यम से आपकी आवाज सुनकर काम करता हूँ, स्पीच रिकग्निशन तकनीक का उपयोग करके आपके भाषण को टेक्स्ट में बदलता हूँ, प्राकृतिक भाषा प्रसंस्करण का उपयोग करके समझता हूँ कि आपका क्या मतलब है, उपयुक्त जवाब उत्पन्न करता हूँ, और फिर टेक्स्ट-टू-स्पीच तकनीक का उपयोग करके उस जवाब को वापस भाषण में बदलता हूँ।",
					"प्रक्रिया में शामिल है: 1) आपकी आवाज सुनना, 2) भाषण को टेक्स्ट में बदलना, 3) आपके इरादे को समझना, 4) जवाब उत्पन्न करना, और 5) आपके सुनने के लिए जवाब को वापस भाषण में बदलना।",
				},
			},
			"supported_languages": {
				"en": {
					"I currently support English and Hindi languages. I can understand and respond in both languages, and I automatically detect which language you're speaking.",
					"I'm bilingual! I can communicate in English and Hindi. Just speak naturally in either language, and I'll understand and respond appropriately.",
				},
				"hi": {
					"मैं वर्तमान में अंग्रेजी और हिंदी भाषाओं का समर्थन करता हूँ। मैं दोनों भाषाओं में समझ और जवाब दे सकता हूँ, और मैं स्वचालित रूप से पता लगाता हूँ कि आप कौन सी भाषा बोल रहे हैं।",
					"मैं द्विभाषी हूँ! मैं अंग्रेजी और हिंदी में संवाद कर सकता हूँ। बस किसी भी भाषा में स्वाभाविक रूप से बोलें, और मैं समझूंगा और उपयुक्त जवाब दूंगा।",
				},
			},
			"privacy": {
				"en": {
					"I respect your privacy. I don't store your conversations permanently, and I only process your speech to understand and respond to you. Your data is not shared with third parties.",
					"Privacy is important to me. I process your speech in real-time to provide responses, but I don't keep permanent records of our conversations. Your information stays private.",
				},
				"hi": {
					"मैं आपकी गोपनीयता का सम्मान करता हूँ। मैं आपकी बातचीत को स्थायी रूप से स्टोर नहीं करता, और मैं केवल आपको समझने और जवाब देने के लिए आपके भाषण को प्रोसेस करता हूँ। आपका डेटा तीसरे पक्ष के साथ साझा नहीं किया जाता।",
					"गोपनीयता मेरे लिए महत्वपूर्ण है। मैं जवाब प्रदान करने के लिए आपके भाषण को रियल-टाइम में प्रोसेस करता हूँ, लेकिन मैं हमारी बातचीत का स्थायी रिकॉर्ड नहीं रखता। आपकी जानकारी निजी रहती है।",
				},
			},
		},
	}
}
