package nft

// TokenABI 铸造合约中本应用用到的方法
// mintTo 为 payable，getCurrentTokenId 返回下一个待铸造的 token id
const TokenABI = `[
	{"type":"function","name":"mintTo","stateMutability":"payable",
	 "inputs":[{"name":"recipient","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getCurrentTokenId","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"tokenURI","stateMutability":"view",
	 "inputs":[{"name":"tokenId","type":"uint256"}],
	 "outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"owner","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"withdrawPayments","stateMutability":"nonpayable",
	 "inputs":[{"name":"payee","type":"address"}],
	 "outputs":[]}
]`
