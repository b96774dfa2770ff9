// nftmint 是 NFT 铸造与画廊的命令行和网页入口
//
// 使用方式:
//
//	nftmint account              # 检测钱包并显示当前账户
//	nftmint gallery              # 读取全部已铸造 token 的元数据
//	nftmint mint                 # 铸造一个 token 并等待确认
//	nftmint history              # 显示已确认的铸造记录
//	nftmint contract owner       # 合约维护（需要 ACCOUNT_PRIVATE_KEY）
//	nftmint serve                # 启动网页界面
package main

func main() {
	Execute()
}
