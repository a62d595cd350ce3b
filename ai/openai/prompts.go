package openai

const condensePrompt = `Given a chat history and the latest user question, ` +
	`formulate a standalone question that can be understood without the chat ` +
	`history. Do NOT answer the question, just reformulate it if needed. ` +
	`Respond with the reformulated question only.`

const answerPrompt = `You are a precise engineering assistant. Answer based ` +
	`ONLY on the context provided. If the context is empty or does not contain ` +
	`the answer, say so. Cite the material names you used.
Context:
%s`
